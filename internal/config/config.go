package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/grid"
	"github.com/ironsheep/invader-radar/internal/loader"
	"github.com/ironsheep/invader-radar/internal/ocr"
	"github.com/ironsheep/invader-radar/internal/similarity"
)

// Config holds all configuration for invader-radar
type Config struct {
	// Detection settings
	Threshold  float64 `yaml:"threshold" env:"INVADER_RADAR_THRESHOLD"`
	Metric     string  `yaml:"metric" env:"INVADER_RADAR_METRIC"`
	ScanBounds string  `yaml:"scan_bounds"`
	Workers    int     `yaml:"workers" env:"INVADER_RADAR_WORKERS"`

	// Dataset layout
	Padding       string `yaml:"padding"`
	RadarPrefix   string `yaml:"radar_prefix"`
	InvaderPrefix string `yaml:"invader_prefix"`

	// Image ingestion
	Bitmap BitmapConfig `yaml:"bitmap"`
	OCR    ocr.Options  `yaml:"ocr"`

	// Watch mode
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	LogLevel string `yaml:"log_level" env:"INVADER_RADAR_LOG_LEVEL"`
}

// BitmapConfig holds bitmap ingestion settings
type BitmapConfig struct {
	CellWidth  int    `yaml:"cell_width"`
	CellHeight int    `yaml:"cell_height"`
	Level      int    `yaml:"level"`
	On         string `yaml:"on"`
	Off        string `yaml:"off"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	bm := loader.DefaultBitmapOptions()
	return &Config{
		Threshold:     detection.DefaultThreshold,
		Metric:        "ratio",
		ScanBounds:    detection.InclusiveBounds.String(),
		Padding:       string(grid.DefaultPadding),
		RadarPrefix:   loader.DefaultRadarPrefix,
		InvaderPrefix: loader.DefaultInvaderPrefix,
		Bitmap: BitmapConfig{
			CellWidth:  bm.CellWidth,
			CellHeight: bm.CellHeight,
			Level:      int(bm.Level),
			On:         string(bm.On),
			Off:        string(bm.Off),
		},
		OCR:           ocr.DefaultOptions(),
		WatchDebounce: 200 * time.Millisecond,
		LogLevel:      "info",
	}
}

// Load loads configuration from file and environment.
//
// An empty path selects the standard locations; a missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("INVADER_RADAR_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "invader-radar", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "invader-radar", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if threshold := os.Getenv("INVADER_RADAR_THRESHOLD"); threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return fmt.Errorf("invalid INVADER_RADAR_THRESHOLD: %w", err)
		}
		cfg.Threshold = v
	}

	if metric := os.Getenv("INVADER_RADAR_METRIC"); metric != "" {
		cfg.Metric = metric
	}

	if workers := os.Getenv("INVADER_RADAR_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid INVADER_RADAR_WORKERS: %w", err)
		}
		cfg.Workers = n
	}

	if level := os.Getenv("INVADER_RADAR_LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return nil
}

// Validate checks the configuration for out-of-range or unknown values.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", c.Threshold)
	}

	if _, err := similarity.MetricByName(c.Metric); err != nil {
		return err
	}

	if _, err := detection.ParseScanBounds(c.ScanBounds); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}

	if utf8.RuneCountInString(c.Padding) != 1 {
		return fmt.Errorf("padding must be a single character, got %q", c.Padding)
	}

	if c.Bitmap.CellWidth < 1 || c.Bitmap.CellHeight < 1 {
		return fmt.Errorf("bitmap.cell_width and bitmap.cell_height must be at least 1")
	}

	if c.Bitmap.Level < 1 || c.Bitmap.Level > 255 {
		return fmt.Errorf("bitmap.level must be between 1 and 255, got %d", c.Bitmap.Level)
	}

	if utf8.RuneCountInString(c.Bitmap.On) != 1 || utf8.RuneCountInString(c.Bitmap.Off) != 1 {
		return fmt.Errorf("bitmap.on and bitmap.off must be single characters")
	}

	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be non-negative")
	}

	switch c.LogLevel {
	case "", "info", "debug":
	default:
		return fmt.Errorf("invalid log_level %q (use info or debug)", c.LogLevel)
	}

	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool { return c.LogLevel == "debug" }

// LoaderOptions converts the dataset settings. Call Validate first.
func (c *Config) LoaderOptions() loader.Options {
	return loader.Options{
		RadarPrefix:   c.RadarPrefix,
		InvaderPrefix: c.InvaderPrefix,
		Padding:       firstRune(c.Padding),
		Bitmap: loader.BitmapOptions{
			CellWidth:  c.Bitmap.CellWidth,
			CellHeight: c.Bitmap.CellHeight,
			Level:      uint8(c.Bitmap.Level),
			On:         firstRune(c.Bitmap.On),
			Off:        firstRune(c.Bitmap.Off),
		},
		OCR: c.OCR,
	}
}

// EngineOptions converts the detection settings. Engine debug lines go to
// logger when debug logging is enabled.
func (c *Config) EngineOptions(logger *log.Logger) ([]detection.Option, error) {
	metric, err := similarity.MetricByName(c.Metric)
	if err != nil {
		return nil, err
	}
	bounds, err := detection.ParseScanBounds(c.ScanBounds)
	if err != nil {
		return nil, err
	}

	opts := []detection.Option{
		detection.WithScorer(similarity.NewWindowScorer(metric)),
		detection.WithThreshold(c.Threshold),
		detection.WithBounds(bounds),
		detection.WithWorkers(c.Workers),
	}
	if c.Debug() && logger != nil {
		opts = append(opts, detection.WithLogger(logger))
	}
	return opts, nil
}

// Write encodes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
