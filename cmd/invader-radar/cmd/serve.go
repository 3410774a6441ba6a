package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/invader-radar/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: "Exposes radar tools over the Model Context Protocol (JSON-RPC 2.0 on stdio).\n" +
		"Configure it in your MCP client; logs go to stderr.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := server.New(cfg, version)
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return err
	}
	return nil
}
