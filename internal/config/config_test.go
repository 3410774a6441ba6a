package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/loader"
)

// isolate points every config lookup at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("INVADER_RADAR_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("INVADER_RADAR_THRESHOLD", "")
	t.Setenv("INVADER_RADAR_METRIC", "")
	t.Setenv("INVADER_RADAR_WORKERS", "")
	t.Setenv("INVADER_RADAR_LOG_LEVEL", "")
	return dir
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, detection.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, "ratio", cfg.Metric)
	assert.Equal(t, "inclusive", cfg.ScanBounds)
	assert.Equal(t, "-", cfg.Padding)
	assert.Equal(t, 200*time.Millisecond, cfg.WatchDebounce)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.Debug())
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
threshold: 0.9
metric: jaro-winkler
scan_bounds: legacy
workers: 3
radar_prefix: field
bitmap:
  cell_width: 8
  cell_height: 12
  on: "#"
ocr:
  language: deu
watch_debounce: 1s
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Threshold)
	assert.Equal(t, "jaro-winkler", cfg.Metric)
	assert.Equal(t, "legacy", cfg.ScanBounds)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "field", cfg.RadarPrefix)
	assert.Equal(t, loader.DefaultInvaderPrefix, cfg.InvaderPrefix)
	assert.Equal(t, 8, cfg.Bitmap.CellWidth)
	assert.Equal(t, 12, cfg.Bitmap.CellHeight)
	assert.Equal(t, "#", cfg.Bitmap.On)
	assert.Equal(t, "-", cfg.Bitmap.Off)
	assert.Equal(t, "deu", cfg.OCR.Language)
	assert.Equal(t, "o-", cfg.OCR.Alphabet)
	assert.Equal(t, time.Second, cfg.WatchDebounce)
	assert.True(t, cfg.Debug())
}

func TestLoad_ConfigEnvPath(t *testing.T) {
	isolate(t)
	t.Setenv("INVADER_RADAR_CONFIG", writeConfig(t, "threshold: 0.7\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Threshold)
}

func TestLoad_XDGPath(t *testing.T) {
	xdg := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "invader-radar"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "invader-radar", "config.yaml"), []byte("workers: 2\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolate(t)

	_, err := Load(writeConfig(t, "threshold: [not, a, number\n"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
		wantErr   bool
	}{
		{
			name: "valid environment variables",
			envVars: map[string]string{
				"INVADER_RADAR_THRESHOLD": "0.85",
				"INVADER_RADAR_METRIC":    "jw",
				"INVADER_RADAR_WORKERS":   "6",
				"INVADER_RADAR_LOG_LEVEL": "DEBUG",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.85, cfg.Threshold)
				assert.Equal(t, "jw", cfg.Metric)
				assert.Equal(t, 6, cfg.Workers)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:    "invalid threshold",
			envVars: map[string]string{"INVADER_RADAR_THRESHOLD": "high"},
			wantErr: true,
		},
		{
			name:    "invalid workers",
			envVars: map[string]string{"INVADER_RADAR_WORKERS": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := DefaultConfig()
			err := loadFromEnv(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("INVADER_RADAR_THRESHOLD", "0.95")

	cfg, err := Load(writeConfig(t, "threshold: 0.7\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.95, cfg.Threshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"threshold below zero", func(c *Config) { c.Threshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.Threshold = 1.5 }},
		{"unknown metric", func(c *Config) { c.Metric = "hamming" }},
		{"unknown bounds", func(c *Config) { c.ScanBounds = "sideways" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"empty padding", func(c *Config) { c.Padding = "" }},
		{"long padding", func(c *Config) { c.Padding = "--" }},
		{"zero cell width", func(c *Config) { c.Bitmap.CellWidth = 0 }},
		{"level out of range", func(c *Config) { c.Bitmap.Level = 300 }},
		{"multi-char on", func(c *Config) { c.Bitmap.On = "oo" }},
		{"negative debounce", func(c *Config) { c.WatchDebounce = -time.Second }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoaderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Padding = "."
	cfg.Bitmap.On = "█"

	opts := cfg.LoaderOptions()
	assert.Equal(t, '.', opts.Padding)
	assert.Equal(t, '█', opts.Bitmap.On)
	assert.Equal(t, '-', opts.Bitmap.Off)
	assert.Equal(t, uint8(128), opts.Bitmap.Level)
	assert.Equal(t, loader.DefaultRadarPrefix, opts.RadarPrefix)
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 0.9
	cfg.LogLevel = "debug"

	var buf bytes.Buffer
	opts, err := cfg.EngineOptions(log.New(&buf, "", 0))
	require.NoError(t, err)

	e := detection.NewEngine(opts...)
	assert.Equal(t, 0.9, e.Threshold())

	cfg.Metric = "nope"
	_, err = cfg.EngineOptions(nil)
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.Threshold = 0.75
	cfg.WatchDebounce = 2 * time.Second

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), "threshold: 0.75")
	assert.Contains(t, buf.String(), "watch_debounce: 2s")

	loaded, err := Load(writeConfig(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
