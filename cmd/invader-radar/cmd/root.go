package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/invader-radar/internal/config"
)

var (
	configPath string
	debugFlag  bool
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "invader-radar",
	Short: "Find space invaders in noisy radar data",
	Long: "Scans a radar grid for known invader patterns, tolerating noise, and reports\n" +
		"every invader found with its position and similarity score.",
	SilenceUsage: true,
}

// SetBuildInfo records the version stamped into the binary.
func SetBuildInfo(v, built, commit string) {
	version, buildTime, gitCommit = v, built, commit
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/invader-radar/config.yaml)")
	f.BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debugFlag {
		cfg.LogLevel = "debug"
	}
	if cfg.Debug() {
		log.Printf("invader-radar v%s (built %s, commit %s)", version, buildTime, gitCommit)
	}
	return cfg, nil
}

// detectionFlags are the per-run overrides shared by scan and view.
type detectionFlags struct {
	threshold float64
	metric    string
	bounds    string
	workers   int
}

func (d *detectionFlags) register(c *cobra.Command) {
	f := c.Flags()
	f.Float64VarP(&d.threshold, "threshold", "t", 0, "Peak threshold between 0 and 1 (default from config, 0.8)")
	f.StringVar(&d.metric, "metric", "", "Similarity metric: ratio or jaro-winkler")
	f.StringVar(&d.bounds, "bounds", "", "Scan bounds: inclusive or legacy")
	f.IntVar(&d.workers, "workers", 0, "Patterns scanned concurrently (default: number of CPUs)")
}

// apply copies the flags the user set onto cfg.
func (d *detectionFlags) apply(c *cobra.Command, cfg *config.Config) error {
	f := c.Flags()
	if f.Changed("threshold") {
		cfg.Threshold = d.threshold
	}
	if f.Changed("metric") {
		cfg.Metric = d.metric
	}
	if f.Changed("bounds") {
		cfg.ScanBounds = d.bounds
	}
	if f.Changed("workers") {
		cfg.Workers = d.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
