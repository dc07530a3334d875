package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/shopdesk/internal/export/fold"
	"github.com/smallbiznis/shopdesk/internal/export/rows"
)

const gridSize = 12

// Document renders row sets as a paginated PDF table. Every string is folded
// to ASCII because the core fonts carry no extended glyphs.
type Document struct {
	compress bool
}

type DocumentOption func(*Document)

// WithCompression toggles deflate on the PDF content streams. It is on by
// default.
func WithCompression(enabled bool) DocumentOption {
	return func(d *Document) { d.compress = enabled }
}

func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{compress: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) Serialize(set rows.RowSet, title string) ([]byte, error) {
	return d.SerializeSections(title, []rows.RowSet{set})
}

// SerializeSections renders one titled table per non-empty set into a single
// document.
func (d *Document) SerializeSections(title string, sets []rows.RowSet) ([]byte, error) {
	nonEmpty := make([]rows.RowSet, 0, len(sets))
	for _, s := range sets {
		if !s.Empty() {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, ErrEmptyExport
	}

	title = fold.Fold(title)
	cfg := config.NewBuilder().
		WithTitle(title, false).
		WithCompression(d.compress).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(gridSize, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	for _, set := range nonEmpty {
		widths, err := columnWidths(len(set.Columns))
		if err != nil {
			return nil, err
		}

		if len(nonEmpty) > 1 {
			m.AddRow(12,
				text.NewCol(gridSize, fold.Fold(set.Name), props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Top:   4,
				}),
			)
		}

		m.AddRow(8, tableRow(widths, set.Columns, props.Text{Style: fontstyle.Bold, Size: 9})...)
		for _, line := range set.Strings() {
			m.AddRow(7, tableRow(widths, line, props.Text{Size: 9})...)
		}
		m.AddRow(4, col.New(gridSize))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generate document: %v", ErrSerialization, err)
	}
	return doc.GetBytes(), nil
}

func tableRow(widths []int, cells []string, style props.Text) []core.Col {
	cols := make([]core.Col, 0, len(cells))
	for i, value := range cells {
		cellStyle := style
		if i > 0 {
			cellStyle.Align = align.Right
		}
		cols = append(cols, text.NewCol(widths[i], fold.Fold(value), cellStyle))
	}
	return cols
}

// columnWidths spreads the twelve grid units over n columns, giving any
// remainder to the first column.
func columnWidths(n int) ([]int, error) {
	if n < 1 || n > gridSize {
		return nil, fmt.Errorf("%w: cannot lay out %d columns", ErrSerialization, n)
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = gridSize / n
	}
	widths[0] += gridSize % n
	return widths, nil
}
