package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/smallbiznis/shopdesk/internal/clock"
)

type Entry struct {
	Name    string
	Payload []byte
}

// Archive packs named payloads into a deflate zip. Entry timestamps come from
// the injected clock.
type Archive struct {
	clock clock.Clock
}

func NewArchive(c clock.Clock) *Archive {
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Archive{clock: c}
}

// Serialize writes entries in input order. Names must be unique, relative and
// non-blank.
func (a *Archive) Serialize(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyArchive
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := validateEntryName(e.Name); err != nil {
			return nil, err
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntry, e.Name)
		}
		seen[e.Name] = struct{}{}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := a.clock.Now()
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create entry %q: %v", ErrSerialization, e.Name, err)
		}
		if _, err := w.Write(e.Payload); err != nil {
			return nil, fmt.Errorf("%w: write entry %q: %v", ErrSerialization, e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: close archive: %v", ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

func validateEntryName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: blank name", ErrInvalidEntryName)
	case strings.Contains(name, "\\"), strings.HasPrefix(name, "/"):
		return fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	case path.Clean(name) != name || strings.HasPrefix(name, "../") || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidEntryName, name)
	}
	return nil
}
