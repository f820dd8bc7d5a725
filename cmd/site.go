package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/progress"
	"github.com/ziadkadry99/glossary/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static glossary website",
	Long:  `Generates a self-contained static HTML site from the glossary document: one page per subject, a search index, card images and a placeholder.`,
	RunE:  runSite,
}

func init() {
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 8080, "port for the local dev server")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	siteCmd.Flags().String("output", "", "override output directory")
	siteCmd.Flags().String("source", "", "override the glossary document path or URL")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	source, _ := cmd.Flags().GetString("source")

	generator := site.NewSiteGenerator(newLoader(cfg, source), outputDir, cfg.SiteTitle)
	generator.DefaultSubject = cfg.DefaultSubject
	generator.ImageDir = cfg.ImageDir
	generator.ImageBaseURL = cfg.ImageBaseURL
	generator.ImageExt = cfg.ImageExt
	generator.Placeholder = cfg.PlaceholderImage
	generator.Search = cfg.SearchOptions()
	generator.DebounceMS = cfg.Search.DebounceMS
	generator.Reporter = progress.NewReporter()

	pageCount, err := generator.Generate(context.Background())
	if err != nil {
		if errors.Is(err, glossary.ErrLoad) {
			fmt.Fprintf(os.Stderr, "Wrote the load error page to %s\n", outputDir)
		}
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if serve {
		port, _ := cmd.Flags().GetInt("port")
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
