package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "invader-radar %s\n", version)
		fmt.Fprintf(w, "  Build time: %s\n", buildTime)
		fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
	},
}
