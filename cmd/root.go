package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Bilingual flash-card glossary: static site, server and terminal browser",
	Long: `Glossary renders a Spanish/English term glossary organised by subject.
Each subject shows groups of flippable cards with images and definitions.
The same document can be published as a static site, served over HTTP,
browsed in the terminal or exposed to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
