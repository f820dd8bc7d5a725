package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search subjects, groups and terms",
	Long:  `Runs the same case-insensitive substring filter as the search box and prints the matches in document order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (defaults to the configured cap)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := newLoader(cfg, "").Load(context.Background())
	if err != nil {
		return err
	}

	opts := cfg.SearchOptions()
	if limit > 0 {
		opts.MaxResults = limit
	}
	results := search.Search(args[0], doc, opts)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []search.Match{}
		}
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d result(s) for %q:\n\n", len(results), args[0])
	for i, r := range results {
		fmt.Printf("%d. [%s] %s", i+1, r.Kind, r.Text)
		if r.Detail != "" {
			fmt.Printf("  (%s)", r.Detail)
		}
		fmt.Println()
		if verbose {
			fmt.Printf("   subject=%s group=%s card=%s\n", r.SubjectID, r.GroupID, r.CardID)
		}
	}
	return nil
}
