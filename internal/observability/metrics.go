package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one run
// of the analysis pipeline.
type Metrics struct {
	RowsParsed         prometheus.Counter
	StationsCatalogued prometheus.Gauge

	NormalizeRuns *prometheus.CounterVec // labels: result={rewritten,skipped}

	// Selection metrics.
	SelectionInputs *prometheus.CounterVec // labels: outcome={accepted,unknown,duplicate,done,busiest,ignored}
	SelectionMode   *prometheus.CounterVec // labels: mode={manual,ranked}

	StageDuration *prometheus.HistogramVec // labels: stage={normalize,parse,select,extract,render}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tube_commuters",
			Name:      "rows_parsed_total",
			Help:      "Data rows read from the dataset, footer included.",
		}),
		StationsCatalogued: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tube_commuters",
			Name:      "stations_catalogued",
			Help:      "Stations available for selection.",
		}),
		NormalizeRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tube_commuters",
			Name:      "normalize_total",
			Help:      "Dataset normalization attempts by result.",
		}, []string{"result"}),
		SelectionInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tube_commuters",
			Name:      "selection_inputs_total",
			Help:      "Station name entries by outcome.",
		}, []string{"outcome"}),
		SelectionMode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tube_commuters",
			Name:      "selection_mode_total",
			Help:      "Completed selections by mode.",
		}, []string{"mode"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tube_commuters",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"stage"}),
	}

	prometheus.MustRegister(
		m.RowsParsed,
		m.StationsCatalogued,
		m.NormalizeRuns,
		m.SelectionInputs,
		m.SelectionMode,
		m.StageDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsParsed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tube_commuters", Name: "rows_parsed_total"}),
		StationsCatalogued: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tube_commuters", Name: "stations_catalogued"}),
		NormalizeRuns:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tube_commuters", Name: "normalize_total"}, []string{"result"}),
		SelectionInputs:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tube_commuters", Name: "selection_inputs_total"}, []string{"outcome"}),
		SelectionMode:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tube_commuters", Name: "selection_mode_total"}, []string{"mode"}),
		StageDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "tube_commuters", Name: "stage_duration_seconds"}, []string{"stage"}),
	}
}

// WriteTextfile dumps every metric in the default registry to path in the
// Prometheus text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
