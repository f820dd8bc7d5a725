package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/glossary/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the glossary over HTTP",
	Long:  `Starts the glossary HTTP server: rendered subject pages, card detail fragments, a JSON API and server-side search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		docs := newLoader(cfg, "")
		if _, err := docs.Load(context.Background()); err != nil {
			// Pages show the load error placeholder; keep serving.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		srv := server.New(server.Config{
			Port:           port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			SiteTitle:      cfg.SiteTitle,
			DefaultSubject: cfg.DefaultSubject,
			ImageDir:       cfg.ImageDir,
			ImageBaseURL:   cfg.ImageBaseURL,
			ImageExt:       cfg.ImageExt,
			Placeholder:    cfg.PlaceholderImage,
			Search:         cfg.SearchOptions(),
			DebounceMS:     cfg.Search.DebounceMS,
		}, docs)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "glossary server %s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Source: %s\n", docs.Source())
		fmt.Fprintf(os.Stderr, "  Images: %s\n", cfg.ImageDir)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
