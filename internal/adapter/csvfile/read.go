package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/tube-commuters/internal/domain"
)

// StructureError reports a row the configured layout cannot address.
// Row is the 1-based record number in the file, preamble included.
type StructureError struct {
	Row    int
	Fields int
	Need   int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: has %d fields, layout needs %d", e.Row, e.Fields, e.Need)
}

// Read parses a normalized export at path.
func Read(path string, layout domain.Layout) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, openError("read", path, err)
	}
	defer f.Close()

	t, err := Parse(f, layout)
	if err != nil {
		return domain.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Parse consumes the preamble rows, keeping the last one as the header, and
// returns every following row. Station rows must reach every layout column;
// the final (footer) row only needs a name.
func Parse(r io.Reader, layout domain.Layout) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var header []string
	for i := 0; i < layout.PreambleRows; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return domain.Table{}, &StructureError{Row: i + 1, Reason: "missing preamble row"}
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("parse preamble: %w", err)
		}
		header = rec
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse rows: %w", err)
	}

	t := domain.Table{Columns: layout.Columns, Header: header, Rows: rows}
	if err := checkStructure(t, layout.PreambleRows); err != nil {
		return domain.Table{}, err
	}
	return t, nil
}

func checkStructure(t domain.Table, offset int) error {
	need := t.Columns.MinFields()
	last := len(t.Rows) - 1
	for i, row := range t.Rows {
		if i == last {
			if len(row) <= t.Columns.Name {
				return &StructureError{Row: offset + i + 1, Fields: len(row), Need: t.Columns.Name + 1}
			}
			continue
		}
		if len(row) < need {
			return &StructureError{Row: offset + i + 1, Fields: len(row), Need: need}
		}
	}
	return nil
}
