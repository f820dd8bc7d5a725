package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the glossary in the terminal",
	Long:  `Opens an interactive terminal browser: flip cards, open details, switch tabs, search with autocomplete and copy terms to the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		source, _ := cmd.Flags().GetString("source")
		subject, _ := cmd.Flags().GetString("subject")
		if subject == "" {
			subject = cfg.DefaultSubject
		}

		doc, loadErr := newLoader(cfg, source).Load(context.Background())
		model := tui.New(doc, loadErr, tui.Options{
			SiteTitle:      cfg.SiteTitle,
			DefaultSubject: subject,
			Search:         cfg.SearchOptions(),
			Debounce:       cfg.Debounce(),
			Resolver:       newResolver(cfg),
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running browser: %w", err)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().String("source", "", "override the glossary document path or URL")
	browseCmd.Flags().String("subject", "", "subject to show first")
	rootCmd.AddCommand(browseCmd)
}
