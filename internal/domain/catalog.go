package domain

import (
	"errors"
	"strings"
)

// ErrUnknownStation is returned when a name has no catalog entry.
var ErrUnknownStation = errors.New("unknown station")

// Station is one catalog entry: a display name and the table row it came from.
type Station struct {
	Name string
	Row  int
}

// Catalog is the ordered list of stations in a table. The table's last row
// is a footer and never appears.
type Catalog struct {
	stations []Station
	index    map[string]int
}

// NewCatalog reads the name column of every row except the last.
func NewCatalog(t Table) *Catalog {
	n := max(len(t.Rows)-1, 0)
	c := &Catalog{
		stations: make([]Station, 0, n),
		index:    make(map[string]int, n),
	}
	for i := 0; i < n; i++ {
		row := t.Rows[i]
		var name string
		if t.Columns.Name < len(row) {
			name = strings.TrimRight(row[t.Columns.Name], " \t\r\n")
		}
		key := Canonical(name)
		if _, exists := c.index[key]; !exists {
			c.index[key] = len(c.stations)
		}
		c.stations = append(c.stations, Station{Name: name, Row: i})
	}
	return c
}

// Len reports the number of stations.
func (c *Catalog) Len() int { return len(c.stations) }

// Stations returns a copy of the entries in table order.
func (c *Catalog) Stations() []Station {
	out := make([]Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// Names returns the station names in table order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.stations))
	for i, s := range c.stations {
		names[i] = s.Name
	}
	return names
}

// Lookup finds the first station whose canonical name matches name.
func (c *Catalog) Lookup(name string) (Station, bool) {
	i, ok := c.index[Canonical(name)]
	if !ok {
		return Station{}, false
	}
	return c.stations[i], true
}

// Contains reports whether name matches a station after canonicalization.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}
