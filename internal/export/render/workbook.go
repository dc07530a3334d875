package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/smallbiznis/shopdesk/internal/export/rows"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

var sheetNameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_",
	"?", "_", "/", "_", "\\", "_",
)

type Workbook struct{}

func NewWorkbook() *Workbook { return &Workbook{} }

// Serialize writes one sheet per non-empty set in input order with a bold
// header row.
func (w *Workbook) Serialize(sets []rows.RowSet) ([]byte, error) {
	nonEmpty := make([]rows.RowSet, 0, len(sets))
	for _, s := range sets {
		if !s.Empty() {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, ErrEmptyExport
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrSerialization, err)
	}

	used := make(map[string]struct{}, len(nonEmpty))
	for i, set := range nonEmpty {
		name := uniqueSheetName(set.Name, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("%w: rename sheet: %v", ErrSerialization, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("%w: new sheet %q: %v", ErrSerialization, name, err)
		}

		if err := writeSheet(f, name, set, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write workbook: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, set rows.RowSet, headerStyle int) error {
	header := make([]interface{}, len(set.Columns))
	for i, col := range set.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: header row: %v", ErrSerialization, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%w: header style: %v", ErrSerialization, err)
	}

	for i, row := range set.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = c.Value()
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrSerialization, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(set.Columns))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("%w: column width: %v", ErrSerialization, err)
	}
	return nil
}

// uniqueSheetName applies Excel naming rules and suffixes " (n)" on
// case-insensitive collisions.
func uniqueSheetName(name string, used map[string]struct{}) string {
	base := strings.Trim(sheetNameReplacer.Replace(strings.TrimSpace(name)), "'")
	if base == "" {
		base = "Sheet"
	}
	base = truncateRunes(base, maxSheetNameLen)

	candidate := base
	for n := 2; ; n++ {
		key := strings.ToLower(candidate)
		if _, taken := used[key]; !taken {
			used[key] = struct{}{}
			return candidate
		}
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate = truncateRunes(base, maxSheetNameLen-utf8.RuneCountInString(suffix)) + suffix
	}
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit])
}
