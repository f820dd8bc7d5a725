package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/glossary/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing glossary search and lookup tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		docs := newLoader(cfg, "")
		fmt.Fprintf(os.Stderr, "glossary MCP server started on stdio (source=%s)\n", docs.Source())
		if _, err := docs.Load(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		srv := mcpserver.NewServer(docs, cfg.SearchOptions())
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
