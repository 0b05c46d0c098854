// Package pipeline composes the analysis stages into one run:
// normalize, parse, catalog, select, extract, format and render.
package pipeline

import (
	"errors"
	"log/slog"

	"github.com/couchcryptid/tube-commuters/internal/chart"
	"github.com/couchcryptid/tube-commuters/internal/domain"
	"github.com/couchcryptid/tube-commuters/internal/observability"
	"github.com/couchcryptid/tube-commuters/internal/selection"
	"github.com/jonboulle/clockwork"
)

// Dataset repairs and reads an export file.
type Dataset interface {
	Normalize(path string) (bool, error)
	Read(path string) (domain.Table, error)
}

// Selector asks the operator which stations to compare.
type Selector interface {
	OfferStationList(names []string) error
	Collect(c *domain.Catalog) (selection.Session, error)
}

// Selection modes reported in Result.Mode.
const (
	ModeManual = "manual"
	ModeRanked = "ranked"
)

// Result summarizes a completed run.
type Result struct {
	Mode     string
	Stations []string
	Title    string
	Chart    chart.Chart
}

// Pipeline orchestrates one analysis run.
type Pipeline struct {
	dataset   Dataset
	selector  Selector
	renderer  chart.Renderer
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	chartDate string
}

// New creates a Pipeline with the given stages and observability. A nil
// clock uses real time.
func New(d Dataset, s Selector, r chart.Renderer, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, chartDate string) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		dataset:   d,
		selector:  s,
		renderer:  r,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		chartDate: chartDate,
	}
}

// ObserveSelection returns a hook counting selection inputs by effect.
func ObserveSelection(m *observability.Metrics) func(selection.Effect) {
	return func(e selection.Effect) {
		m.SelectionInputs.WithLabelValues(e.String()).Inc()
	}
}

// Run analyses the export at path and renders the chart.
func (p *Pipeline) Run(path string) (Result, error) {
	var rewritten bool
	err := p.stage("normalize", func() (err error) {
		rewritten, err = p.dataset.Normalize(path)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	if rewritten {
		p.metrics.NormalizeRuns.WithLabelValues("rewritten").Inc()
		p.logger.Info("dataset normalized", "path", path)
	} else {
		p.metrics.NormalizeRuns.WithLabelValues("skipped").Inc()
		p.logger.Debug("dataset already normalized", "path", path)
	}

	var table domain.Table
	if err := p.stage("parse", func() (err error) {
		table, err = p.dataset.Read(path)
		return err
	}); err != nil {
		return Result{}, err
	}
	p.metrics.RowsParsed.Add(float64(len(table.Rows)))

	catalog := domain.NewCatalog(table)
	p.metrics.StationsCatalogued.Set(float64(catalog.Len()))
	p.logger.Info("table parsed", "path", path, "rows", len(table.Rows), "stations", catalog.Len())
	if catalog.Len() == 0 {
		return Result{}, errors.New("dataset has no stations")
	}

	var session selection.Session
	if err := p.stage("select", func() (err error) {
		if err := p.selector.OfferStationList(catalog.Names()); err != nil {
			return err
		}
		session, err = p.selector.Collect(catalog)
		return err
	}); err != nil {
		return Result{}, err
	}

	res := Result{Mode: ModeManual, Stations: session.Picks()}
	res.Title = domain.FormatStations(res.Stations)
	if session.Ranked() {
		res.Mode = ModeRanked
		res.Title = domain.BusiestTitle
		if res.Stations, err = domain.Busiest(catalog, table, domain.BusiestCount); err != nil {
			return Result{}, err
		}
	}
	res.Title = domain.WithDate(res.Title, p.chartDate)
	p.metrics.SelectionMode.WithLabelValues(res.Mode).Inc()
	p.logger.Info("stations selected", "mode", res.Mode, "stations", res.Stations)

	var bundle domain.SeriesBundle
	if err := p.stage("extract", func() (err error) {
		bundle, err = domain.ExtractSeries(res.Stations, catalog, table)
		return err
	}); err != nil {
		return Result{}, err
	}

	res.Chart = chart.Build(bundle, domain.SliceLabels(table), res.Title)
	if err := p.stage("render", func() error {
		return p.renderer.Render(res.Chart)
	}); err != nil {
		return Result{}, err
	}
	return res, nil
}

// stage runs fn and records how long it took.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	elapsed := p.clock.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		p.logger.Debug("stage failed", "stage", name, "duration", elapsed, "error", err)
		return err
	}
	p.logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return nil
}
