package config

import (
	"fmt"
	"os"

	"github.com/couchcryptid/tube-commuters/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadLayout reads a column-layout descriptor. An empty path returns the
// default layout. Fields missing from the file keep their default values.
func LoadLayout(path string) (domain.Layout, error) {
	layout := domain.DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes YAML over the default layout and validates the result.
func ParseLayout(data []byte) (domain.Layout, error) {
	layout := domain.DefaultLayout()
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return domain.Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if err := validator.New().Struct(layout); err != nil {
		return domain.Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}
