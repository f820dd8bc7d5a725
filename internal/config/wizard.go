package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultPath is the config file written by the wizard.
const DefaultPath = ".glossary.yml"

// detectSource looks for a glossary document in the current directory.
func detectSource() string {
	for _, pattern := range []string{"glossary.json", "glosario.json", "data/*.json", "*.json"} {
		matches, _ := filepath.Glob(pattern)
		if len(matches) > 0 {
			return matches[0]
		}
	}
	return DefaultConfig().Source
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to glossary! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Document source.
	sourcePrompt := promptui.Prompt{
		Label:    "Glossary document (file path or http(s) URL)",
		Default:  detectSource(),
		Validate: required("source"),
	}
	source, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	cfg.Source = strings.TrimSpace(source)

	// 2. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.SiteTitle,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	if strings.TrimSpace(title) != "" {
		cfg.SiteTitle = strings.TrimSpace(title)
	}

	// 3. Where images come from.
	imagePrompt := promptui.Select{
		Label: "Card images",
		Items: []string{
			"local folder (copied into the site)",
			"remote base URL",
			"none (always show the placeholder)",
		},
	}
	imageIdx, _, err := imagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("image selection: %w", err)
	}
	switch imageIdx {
	case 0:
		dirPrompt := promptui.Prompt{Label: "Image folder", Default: cfg.ImageDir, Validate: required("image folder")}
		dir, err := dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("image folder: %w", err)
		}
		cfg.ImageDir = strings.TrimSpace(dir)
	case 1:
		urlPrompt := promptui.Prompt{Label: "Image base URL", Validate: required("image base URL")}
		base, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("image base URL: %w", err)
		}
		cfg.ImageBaseURL = strings.TrimSpace(base)
		cfg.ImageDir = ""
	default:
		cfg.ImageDir = ""
	}

	// 4. Output directory for the static site.
	outPrompt := promptui.Prompt{Label: "Output directory", Default: cfg.OutputDir, Validate: required("output directory")}
	out, err := outPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	cfg.OutputDir = strings.TrimSpace(out)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		confirm := promptui.Prompt{Label: fmt.Sprintf("%s exists, overwrite", path), IsConfirm: true}
		if _, err := confirm.Run(); err != nil {
			return nil, fmt.Errorf("not overwriting %s", path)
		}
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Next: run `glossary site --serve` to build and preview the site.")
	return cfg, nil
}
