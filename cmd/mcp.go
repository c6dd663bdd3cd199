package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BenedictTTM/qualipro/internal/content"
	mcpserver "github.com/BenedictTTM/qualipro/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the site's pages, services, industries, tools and contact details to AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s, err := loadSite(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "qualipro MCP server started on stdio (base_url=%s)\n", cfg.BaseURL)

		srv := mcpserver.NewServer(content.NewStore(s), cfg.BaseURL)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
