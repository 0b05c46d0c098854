// Command validate performs structural integrity checks on a station counts
// export without modifying it: normalization idempotence, row structure,
// integer fields and catalog consistency.
//
// Usage:
//
//	go run ./cmd/validate -file data/station_counts.csv [-layout layout.yml]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/tube-commuters/internal/adapter/csvfile"
	"github.com/couchcryptid/tube-commuters/internal/config"
	"github.com/couchcryptid/tube-commuters/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "station counts export to validate")
	layoutPath := flag.String("layout", "", "column layout descriptor (YAML)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*file, *layoutPath); code != 0 {
		os.Exit(code)
	}
}

func run(file, layoutPath string) int {
	layout, err := config.LoadLayout(layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Println("=== Station Counts Validation ===")
	fmt.Println()

	// Work on a copy so the input is never rewritten.
	work, cleanup, err := copyToTemp(file)
	if err != nil {
		if errors.Is(err, csvfile.ErrFileNotFound) {
			fmt.Fprintf(os.Stderr, "FATAL: the file %s does not exist\n", file)
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		}
		return 1
	}
	defer cleanup()

	norm := validateNormalization(work, layout)
	var table domain.Table
	structure := validateStructure(work, layout, &table)
	phases := []*phase{norm, structure}
	if structure.passed() {
		catalog := domain.NewCatalog(table)
		phases = append(phases,
			validateValues(table, catalog),
			validateTotals(table, catalog),
			validateCatalog(table, catalog),
		)
		fmt.Printf("Stations: %d, time slices: %d\n\n", catalog.Len(), table.Columns.SliceCount())
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func copyToTemp(path string) (string, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", csvfile.ErrFileNotFound, path)
		}
		return "", nil, err
	}
	dir, err := os.MkdirTemp("", "validate-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }
	work := filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(work, data, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return work, cleanup, nil
}

// ── Phase 1: Normalization ──
// A second pass over a normalized file must leave it byte-identical.

func validateNormalization(path string, layout domain.Layout) *phase {
	p := &phase{name: "Phase 1: Normalization (idempotence)"}

	if _, err := csvfile.Normalize(path, layout.Normalize); err != nil {
		p.errorf("normalize: %v", err)
		return p
	}
	first, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read normalized: %v", err)
		return p
	}
	if !bytes.Contains(firstLine(first), []byte(layout.Normalize.CopyrightMarker)) {
		p.errorf("line 1 lacks copyright marker %q after normalization", layout.Normalize.CopyrightMarker)
	}

	rewritten, err := csvfile.Normalize(path, layout.Normalize)
	if err != nil {
		p.errorf("second normalize: %v", err)
		return p
	}
	second, err := os.ReadFile(path)
	if err != nil {
		p.errorf("read renormalized: %v", err)
		return p
	}
	if rewritten || !bytes.Equal(first, second) {
		p.errorf("second normalization changed the file (%d -> %d bytes)", len(first), len(second))
	}
	return p
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}

// ── Phase 2: Structure ──

func validateStructure(path string, layout domain.Layout, out *domain.Table) *phase {
	p := &phase{name: "Phase 2: Structure (column counts)"}

	t, err := csvfile.Read(path, layout)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if len(t.Header) < layout.Columns.SlicesEnd {
		p.errorf("header has %d fields, slice labels need %d", len(t.Header), layout.Columns.SlicesEnd)
	}
	if len(t.Rows) < 2 {
		p.errorf("expected at least one station row and a footer, got %d rows", len(t.Rows))
	}
	*out = t
	return p
}

// ── Phase 3: Values ──
// Every slice count and daily total must be an integer.

func validateValues(t domain.Table, c *domain.Catalog) *phase {
	p := &phase{name: "Phase 3: Values (integer fields)"}

	if _, err := domain.Totals(c, t); err != nil {
		p.errorf("%v", err)
	}
	for _, s := range c.Stations() {
		if _, err := domain.ExtractSeries([]string{s.Name}, c, t); err != nil {
			p.errorf("%v", err)
		}
	}
	return p
}

// ── Phase 4: Totals ──
// A station's daily total is the sum of its slices; the footer total is the
// sum of the station totals.

func validateTotals(t domain.Table, c *domain.Catalog) *phase {
	p := &phase{name: "Phase 4: Totals (consistency)"}

	totals, err := domain.Totals(c, t)
	if err != nil {
		// Already reported by the values phase.
		return p
	}
	grand := 0
	for _, st := range totals {
		grand += st.Total
		bundle, err := domain.ExtractSeries([]string{st.Station.Name}, c, t)
		if err != nil {
			continue
		}
		sum := 0
		for _, v := range bundle.Counts[0] {
			sum += v
		}
		if sum != st.Total {
			p.errorf("row %d: station %q total %d, slices sum to %d", st.Station.Row+1, st.Station.Name, st.Total, sum)
		}
	}

	footer := t.Rows[len(t.Rows)-1]
	if len(footer) <= t.Columns.Total {
		p.errorf("footer has no total column")
		return p
	}
	want, err := strconv.Atoi(strings.TrimSpace(footer[t.Columns.Total]))
	if err != nil {
		p.errorf("footer total %q is not an integer", footer[t.Columns.Total])
	} else if want != grand {
		p.errorf("footer total %d, station totals sum to %d", want, grand)
	}
	return p
}

// ── Phase 5: Catalog ──

func validateCatalog(t domain.Table, c *domain.Catalog) *phase {
	p := &phase{name: "Phase 5: Catalog (station names)"}

	seen := map[string]int{}
	for _, s := range c.Stations() {
		if s.Name == "" {
			p.errorf("row %d: empty station name", s.Row+1)
			continue
		}
		key := domain.Canonical(s.Name)
		if first, dup := seen[key]; dup {
			p.errorf("row %d: station %q duplicates row %d", s.Row+1, s.Name, first+1)
			continue
		}
		seen[key] = s.Row
	}
	if footer := t.Rows[len(t.Rows)-1]; c.Contains(footer[t.Columns.Name]) {
		p.errorf("footer name %q is also a station", footer[t.Columns.Name])
	}
	return p
}
