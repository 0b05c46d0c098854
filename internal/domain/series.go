package domain

import "fmt"

// SeriesBundle holds the selected stations and their parallel time-slice
// counts. Counts[i] belongs to Stations[i].
type SeriesBundle struct {
	Stations []string
	Counts   [][]int
}

// ExtractSeries reads the time-slice counts for each selected station.
func ExtractSeries(names []string, c *Catalog, t Table) (SeriesBundle, error) {
	bundle := SeriesBundle{
		Stations: make([]string, 0, len(names)),
		Counts:   make([][]int, 0, len(names)),
	}
	for _, name := range names {
		s, ok := c.Lookup(name)
		if !ok {
			return SeriesBundle{}, fmt.Errorf("extract series: %w: %q", ErrUnknownStation, name)
		}
		counts, err := sliceCounts(t.Rows[s.Row], t.Columns)
		if err != nil {
			return SeriesBundle{}, fmt.Errorf("extract series for %q: %w", name, err)
		}
		bundle.Stations = append(bundle.Stations, name)
		bundle.Counts = append(bundle.Counts, counts)
	}
	return bundle, nil
}

func sliceCounts(row []string, c Columns) ([]int, error) {
	counts := make([]int, 0, c.SliceCount())
	for col := c.SlicesStart; col < c.SlicesEnd; col++ {
		v, err := intField(row, col)
		if err != nil {
			return nil, err
		}
		counts = append(counts, v)
	}
	return counts, nil
}
