package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/glossary/internal/config"
	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/loader"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `glossary init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if verbose {
		log.Printf("config: source=%s images=%s output=%s", cfg.Source, cfg.ImageDir, cfg.OutputDir)
	}
	return cfg, nil
}

// newLoader creates the memoized document loader for the configured
// source. An explicit source argument wins over the config.
func newLoader(cfg *config.Config, source string) *loader.Loader {
	if source == "" {
		source = cfg.Source
	}
	return loader.New(source)
}

// newResolver creates an image resolver for local use (terminal browser,
// CLI output). Paths point into the image folder itself.
func newResolver(cfg *config.Config) *images.Resolver {
	if cfg.ImageBaseURL != "" {
		return images.NewResolver(cfg.ImageBaseURL, cfg.ImageExt, cfg.PlaceholderImage, images.HTTPProber{})
	}
	if _, err := os.Stat(cfg.ImageDir); err != nil {
		if verbose {
			log.Printf("image folder %s not available: %v", cfg.ImageDir, err)
		}
	}
	dir := filepath.ToSlash(filepath.Clean(cfg.ImageDir))
	prober := images.FileProber{Root: cfg.ImageDir, URLPrefix: dir}
	return images.NewResolver(dir, cfg.ImageExt, cfg.PlaceholderImage, prober)
}
