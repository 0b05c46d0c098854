package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is a parsed export: the header row and every row after it, in file
// order. It is read-only once built.
type Table struct {
	Columns Columns
	Header  []string
	Rows    [][]string
}

// SliceLabels returns the header labels of the time-slice block, trimmed and
// cut to the configured label width.
func SliceLabels(t Table) []string {
	c := t.Columns
	labels := make([]string, 0, c.SliceCount())
	for i := c.SlicesStart; i < c.SlicesEnd; i++ {
		var label string
		if i < len(t.Header) {
			label = strings.TrimSpace(t.Header[i])
		}
		if r := []rune(label); len(r) > c.LabelWidth {
			label = string(r[:c.LabelWidth])
		}
		labels = append(labels, label)
	}
	return labels
}

// intField parses row[col] as an integer. Surrounding whitespace is ignored.
func intField(row []string, col int) (int, error) {
	if col >= len(row) {
		return 0, fmt.Errorf("column %d: row has %d fields", col, len(row))
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		return 0, fmt.Errorf("column %d: %w", col, err)
	}
	return v, nil
}
