package domain

import (
	"strconv"
	"testing"
)

const testFooter = "All Stations"

// makeRow builds a default-layout row whose slice i holds base+i.
func makeRow(name string, base, total int) []string {
	c := DefaultLayout().Columns
	row := make([]string, c.MinFields())
	row[0] = "500"
	row[c.Name] = name
	for i := c.SlicesStart; i < c.SlicesEnd; i++ {
		row[i] = strconv.Itoa(base + i - c.SlicesStart)
	}
	row[c.Total] = strconv.Itoa(total)
	return row
}

// makeTable builds a table of stations plus a footer row.
func makeTable(t *testing.T, names []string, totals []int) Table {
	t.Helper()
	if len(names) != len(totals) {
		t.Fatalf("names and totals differ in length: %d vs %d", len(names), len(totals))
	}
	tbl := Table{Columns: DefaultLayout().Columns}
	tbl.Header = make([]string, tbl.Columns.MinFields())
	for i := tbl.Columns.SlicesStart; i < tbl.Columns.SlicesEnd; i++ {
		tbl.Header[i] = " 0500-0515 "
	}
	for i, name := range names {
		tbl.Rows = append(tbl.Rows, makeRow(name, i*1000, totals[i]))
	}
	sum := 0
	for _, v := range totals {
		sum += v
	}
	tbl.Rows = append(tbl.Rows, makeRow(testFooter, 0, sum))
	return tbl
}
