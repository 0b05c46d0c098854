// Command commutes compares time-of-day commuter counts for up to five
// stations of a rail network and renders the comparison as a PNG chart.
//
// Usage:
//
//	go run ./cmd/commutes -file data/station_counts.csv -out commutes.png
//
// Without -file (or COMMUTES_FILE) the path is asked for interactively.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/tube-commuters/internal/adapter/csvfile"
	"github.com/couchcryptid/tube-commuters/internal/chart"
	"github.com/couchcryptid/tube-commuters/internal/config"
	"github.com/couchcryptid/tube-commuters/internal/observability"
	"github.com/couchcryptid/tube-commuters/internal/pipeline"
	"github.com/couchcryptid/tube-commuters/internal/selection"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

func run(stdin io.Reader, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	flag.StringVar(&cfg.DatasetPath, "file", cfg.DatasetPath, "path to the station counts export")
	flag.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "column layout descriptor (YAML)")
	flag.StringVar(&cfg.ChartOutput, "out", cfg.ChartOutput, "PNG file to write the chart to")
	flag.Parse()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	defer writeMetrics(cfg, logger)

	layout, err := config.LoadLayout(cfg.LayoutPath)
	if err != nil {
		logger.Error("failed to load layout", "path", cfg.LayoutPath, "error", err)
		return 1
	}

	console := selection.NewConsole(stdin, stdout)
	console.OnEffect = pipeline.ObserveSelection(metrics)

	path := cfg.DatasetPath
	if path == "" {
		path, err = console.Ask("Please enter relative path of filename: ")
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Error("failed to read filename", "error", err)
			return 1
		}
		path = strings.TrimSpace(path)
	}

	renderer := chart.NewPNGRenderer(cfg.ChartOutput, cfg.ChartWidth, cfg.ChartHeight)
	p := pipeline.New(csvfile.NewDataset(layout), console, renderer, logger, metrics, nil, cfg.ChartDate)

	res, err := p.Run(path)
	if errors.Is(err, csvfile.ErrFileNotFound) {
		fmt.Fprintf(stdout, "Sorry, the file %s does not exist\n", path)
		return 0
	}
	if err != nil {
		logger.Error("analysis failed", "path", path, "error", err)
		return 1
	}

	fmt.Fprintln(stdout, res.Title)
	fmt.Fprintf(stdout, "Chart written to %s\n", cfg.ChartOutput)
	return 0
}

func writeMetrics(cfg *config.Config, logger *slog.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("metrics not written", "path", cfg.MetricsTextfile, "error", err)
	}
}
