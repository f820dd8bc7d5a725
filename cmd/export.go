package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/db"
)

var exportCmd = &cobra.Command{
	Use:   "export [database]",
	Short: "Export the glossary into a SQLite database",
	Long:  `Writes every subject, group, member, card and window into a SQLite database, replacing its previous contents.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := "glossary.db"
		if len(args) == 1 {
			path = args[0]
		}

		ctx := context.Background()
		doc, err := newLoader(cfg, "").Load(ctx)
		if err != nil {
			return err
		}

		database, err := db.Open(path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if err := database.ExportDocument(ctx, doc); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		stats, err := database.Stats(ctx)
		if err != nil {
			return err
		}
		total := 0
		for _, st := range stats {
			total += st.Cards
			if verbose {
				fmt.Printf("  %-8s %-30s %3d groups %4d cards\n", st.Code, st.Title, st.Groups, st.Cards)
			}
		}
		fmt.Printf("Exported %d subjects and %d cards to %s\n", len(stats), total, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
