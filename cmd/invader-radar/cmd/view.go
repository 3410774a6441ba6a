package cmd

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/loader"
	"github.com/ironsheep/invader-radar/internal/viewer"
)

var viewFlags detectionFlags

var viewCmd = &cobra.Command{
	Use:   "view <dir>",
	Short: "Browse detected invaders in the terminal",
	Long: "Scans <dir> and shows the radar with every match highlighted.\n" +
		"Keys: n/p or Tab to cycle matches, h/j/k/l to scroll, q to quit.",
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewFlags.register(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := viewFlags.apply(cmd, cfg); err != nil {
		return err
	}

	ds, err := loader.LoadDir(args[0], cfg.LoaderOptions())
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions(log.Default())
	if err != nil {
		return err
	}
	matches, err := detection.NewEngine(opts...).Run(ds.Radar, ds.Patterns)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	viewer.New(screen, ds.Radar, matches).Run()
	return nil
}
