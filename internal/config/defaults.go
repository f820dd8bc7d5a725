package config

import (
	"time"

	"github.com/ziadkadry99/glossary/internal/search"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:           "glossary.json",
		SiteTitle:        "Glosario",
		ImageDir:         "images",
		ImageExt:         "png",
		PlaceholderImage: "images/placeholder.svg",
		OutputDir:        "site",
		Search: SearchConfig{
			MinQuery:   search.DefaultMinQueryLength,
			MaxResults: search.DefaultMaxResults,
			DebounceMS: int(search.DefaultDebounce / time.Millisecond),
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// SearchOptions converts the search settings for the filter.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		MinQueryLength: c.Search.MinQuery,
		MaxResults:     c.Search.MaxResults,
	}
}

// Debounce returns the search idle window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}
