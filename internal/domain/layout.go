package domain

// Columns locates the fields of interest within a data row.
type Columns struct {
	Name        int `yaml:"name" validate:"gte=0"`
	SlicesStart int `yaml:"slices_start" validate:"gte=0"`
	SlicesEnd   int `yaml:"slices_end" validate:"gtfield=SlicesStart"` // exclusive
	Total       int `yaml:"total" validate:"gte=0"`
	LabelWidth  int `yaml:"label_width" validate:"gt=0"`
}

// SliceCount is the number of time slices per station.
func (c Columns) SliceCount() int {
	return c.SlicesEnd - c.SlicesStart
}

// MinFields is the number of fields a station row needs for every column to
// be addressable.
func (c Columns) MinFields() int {
	n := max(c.Name, c.Total, c.SlicesEnd-1)
	return n + 1
}

// NormalizeRules describes how a raw export is repaired before parsing.
type NormalizeRules struct {
	// CopyrightMarker on line 1 means the file has already been normalized.
	CopyrightMarker string `yaml:"copyright_marker" validate:"required"`
	// SectionMarker drops any line containing it.
	SectionMarker string `yaml:"section_marker"`
	// SeparatorPrefix drops any line starting with it.
	SeparatorPrefix string `yaml:"separator_prefix"`
	// StripCommaLines are 1-based physical line numbers of the original
	// file whose commas are removed.
	StripCommaLines []int `yaml:"strip_comma_lines" validate:"dive,gt=0"`
}

// Layout is the full descriptor of one dataset export format.
type Layout struct {
	Columns      Columns        `yaml:"columns"`
	PreambleRows int            `yaml:"preamble_rows" validate:"gte=1"`
	Normalize    NormalizeRules `yaml:"normalize"`
}

// DefaultLayout describes the weekday station counts export.
func DefaultLayout() Layout {
	return Layout{
		Columns: Columns{
			Name:        1,
			SlicesStart: 4,
			SlicesEnd:   100,
			Total:       101,
			LabelWidth:  4,
		},
		PreambleRows: 3,
		Normalize: NormalizeRules{
			CopyrightMarker: "(C)",
			SectionMarker:   "COUNTS -",
			SeparatorPrefix: ",,",
			StripCommaLines: []int{3, 5},
		},
	}
}
