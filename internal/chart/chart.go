// Package chart turns extracted station series into a renderable chart
// description and draws it.
package chart

import (
	"github.com/couchcryptid/tube-commuters/internal/domain"
)

// Axis titles shared by every commuter chart.
const (
	XAxisTitle = "Time slices"
	YAxisTitle = "Number of commuters/time slice"
)

// Palette assigns one colour per station in selection order.
var Palette = []string{"red", "blue", "orange", "green", "black"}

// Series is one plotted line.
type Series struct {
	Label  string
	Values []int
	Color  string
	Alpha  float64
}

// Fill shades the region between two series.
type Fill struct {
	Lower int // index into Chart.Series
	Upper int
	Color string
	Alpha float64
}

// Chart is everything a renderer needs.
type Chart struct {
	Title      string
	XLabels    []string
	XAxisTitle string
	YAxisTitle string
	Series     []Series
	Fill       *Fill
}

// Renderer draws a chart somewhere.
type Renderer interface {
	Render(c Chart) error
}

// Build lays out a chart for the bundle. A pair of stations also gets the
// region between their lines shaded.
func Build(bundle domain.SeriesBundle, labels []string, title string) Chart {
	c := Chart{
		Title:      title,
		XLabels:    labels,
		XAxisTitle: XAxisTitle,
		YAxisTitle: YAxisTitle,
		Series:     make([]Series, len(bundle.Stations)),
	}
	for i, name := range bundle.Stations {
		c.Series[i] = Series{
			Label:  name,
			Values: bundle.Counts[i],
			Color:  Palette[i%len(Palette)],
			Alpha:  0.5,
		}
	}
	if len(c.Series) == 2 {
		c.Fill = &Fill{Lower: 0, Upper: 1, Color: "purple", Alpha: 0.1}
	}
	return c
}
