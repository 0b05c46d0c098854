package config

import (
	"fmt"
	"strconv"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	DatasetPath string
	LayoutPath  string
	LogLevel    string
	LogFormat   string

	// Chart output.
	ChartOutput string
	ChartDate   string
	ChartWidth  int
	ChartHeight int

	// MetricsTextfile, when set, receives a Prometheus text dump at exit.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	width, err := parsePositiveInt("CHART_WIDTH", "1280")
	if err != nil {
		return nil, err
	}
	height, err := parsePositiveInt("CHART_HEIGHT", "768")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetPath:     sharedcfg.EnvOrDefault("COMMUTES_FILE", ""),
		LayoutPath:      sharedcfg.EnvOrDefault("LAYOUT_FILE", ""),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ChartOutput:     sharedcfg.EnvOrDefault("CHART_OUTPUT", "commutes.png"),
		ChartDate:       sharedcfg.EnvOrDefault("CHART_DATE", "16 November 2017"),
		ChartWidth:      width,
		ChartHeight:     height,
		MetricsTextfile: sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.ChartOutput == "" {
		return nil, fmt.Errorf("CHART_OUTPUT is required")
	}

	return cfg, nil
}

func parsePositiveInt(key, def string) (int, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive integer", key, s)
	}
	return n, nil
}
