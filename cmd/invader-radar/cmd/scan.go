package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/invader-radar/internal/config"
	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/loader"
	"github.com/ironsheep/invader-radar/internal/render"
	"github.com/ironsheep/invader-radar/internal/watch"
)

var (
	scanFlags      detectionFlags
	scanFormat     string
	scanHeatmapDir string
	scanWatch      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Detect invaders in a radar dataset",
	Long: "Loads radar_data* and invader* files from <dir> and prints every invader found.\n" +
		"With --watch the dataset is scanned again whenever a file in <dir> changes.",
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanFlags.register(scanCmd)
	f := scanCmd.Flags()
	f.StringVarP(&scanFormat, "format", "f", "text", "Output format: text or json")
	f.StringVar(&scanHeatmapDir, "heatmap", "", "Write one score heatmap PNG per pattern into this directory")
	f.BoolVarP(&scanWatch, "watch", "w", false, "Rescan when the dataset changes")
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := scanFlags.apply(cmd, cfg); err != nil {
		return err
	}
	if scanFormat != "text" && scanFormat != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", scanFormat)
	}

	cache := loader.NewCache(cfg.LoaderOptions())
	out := cmd.OutOrStdout()

	if err := scanOnce(out, cache, dir, cfg); err != nil {
		if !scanWatch {
			return err
		}
		log.Printf("Scan failed: %v", err)
	}
	if !scanWatch {
		return nil
	}

	watcher, err := watch.NewWatcher(cfg.WatchDebounce, log.Default())
	if err != nil {
		return err
	}
	defer watcher.Stop()

	err = watcher.Watch(dir, func(paths []string) {
		if cfg.Debug() {
			log.Printf("Dataset changed: %v", paths)
		}
		cache.Evict(dir)
		if err := scanOnce(out, cache, dir, cfg); err != nil {
			log.Printf("Scan failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("Watching %s (Ctrl-C to stop)", dir)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// scanOnce loads the dataset, runs detection and writes the report.
func scanOnce(w io.Writer, cache *loader.Cache, dir string, cfg *config.Config) error {
	ds, err := cache.Load(dir)
	if err != nil {
		return err
	}

	opts, err := cfg.EngineOptions(log.Default())
	if err != nil {
		return err
	}
	res, err := detection.NewEngine(opts...).Analyze(ds.Radar, ds.Patterns)
	if err != nil {
		return err
	}

	if scanHeatmapDir != "" {
		if err := writeHeatmaps(scanHeatmapDir, res); err != nil {
			return err
		}
	}

	if scanFormat == "json" {
		return render.JSON(w, ds.Radar, res.Matches, render.Meta{
			Source:    ds.Dir,
			Threshold: cfg.Threshold,
			Metric:    cfg.Metric,
		})
	}
	return render.Text(w, ds.Radar, res.Matches)
}

// writeHeatmaps saves one heatmap per pattern, outlining the peaks the
// engine kept.
func writeHeatmaps(dir string, res *detection.Result) error {
	opts := render.DefaultHeatmapOptions()
	for _, s := range res.Surfaces {
		if s.Scores == nil {
			continue
		}
		path := filepath.Join(dir, render.HeatmapFileName(s.Name))
		if err := render.SaveHeatmap(path, s.Scores, s.Peaks, opts); err != nil {
			return fmt.Errorf("heatmap for %s: %w", s.Name, err)
		}
		log.Printf("Wrote %s", path)
	}
	return nil
}
