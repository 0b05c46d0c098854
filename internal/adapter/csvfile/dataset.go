package csvfile

import "github.com/couchcryptid/tube-commuters/internal/domain"

// Dataset binds Normalize and Read to one layout.
// It implements pipeline.Dataset.
type Dataset struct {
	Layout domain.Layout
}

// NewDataset creates a Dataset for the given layout.
func NewDataset(layout domain.Layout) *Dataset {
	return &Dataset{Layout: layout}
}

func (d *Dataset) Normalize(path string) (bool, error) {
	return Normalize(path, d.Layout.Normalize)
}

func (d *Dataset) Read(path string) (domain.Table, error) {
	return Read(path, d.Layout)
}
