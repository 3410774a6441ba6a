// invader-radar finds space invaders in noisy radar data.
package main

import (
	"log"
	"os"

	"github.com/ironsheep/invader-radar/cmd/invader-radar/cmd"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for reports and the MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cmd.SetBuildInfo(Version, BuildTime, GitCommit)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
