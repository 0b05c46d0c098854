package domain

import (
	"fmt"
	"sort"
)

// BusiestCount is how many stations ranked mode returns.
const BusiestCount = 5

// StationTotal pairs a station with its daily commuter total.
type StationTotal struct {
	Station Station
	Total   int
}

// Totals reads the daily total of every catalog station from its own row.
func Totals(c *Catalog, t Table) ([]StationTotal, error) {
	totals := make([]StationTotal, 0, c.Len())
	for _, s := range c.stations {
		v, err := intField(t.Rows[s.Row], t.Columns.Total)
		if err != nil {
			return nil, fmt.Errorf("total for station %q: %w", s.Name, err)
		}
		totals = append(totals, StationTotal{Station: s, Total: v})
	}
	return totals, nil
}

// Busiest returns the names of the n stations with the highest daily total,
// busiest first. Equal totals keep table order.
func Busiest(c *Catalog, t Table, n int) ([]string, error) {
	totals, err := Totals(c, t)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if n > len(totals) {
		n = len(totals)
	}
	names := make([]string, n)
	for i := range names {
		names[i] = totals[i].Station.Name
	}
	return names, nil
}
