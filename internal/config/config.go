package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix marks environment overrides: GLOSSARY_SOURCE -> source,
// GLOSSARY_SEARCH__MIN_QUERY -> search.min_query.
const envPrefix = "GLOSSARY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GLOSSARY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Double underscores separate nested keys so that single underscores
	// inside key names survive.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Search.MinQuery < 1 {
		return fmt.Errorf("search.min_query must be at least 1")
	}

	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search.max_results must be at least 1")
	}

	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if strings.ContainsAny(c.ImageExt, "/\\") {
		return fmt.Errorf("invalid image_ext %q", c.ImageExt)
	}

	return nil
}
