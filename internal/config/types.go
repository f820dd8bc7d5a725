package config

// Config is the top-level glossary configuration, corresponding to
// .glossary.yml.
type Config struct {
	Source           string       `yaml:"source" koanf:"source"`
	SiteTitle        string       `yaml:"site_title" koanf:"site_title"`
	ImageDir         string       `yaml:"image_dir" koanf:"image_dir"`
	ImageBaseURL     string       `yaml:"image_base_url" koanf:"image_base_url"`
	ImageExt         string       `yaml:"image_ext" koanf:"image_ext"`
	PlaceholderImage string       `yaml:"placeholder_image" koanf:"placeholder_image"`
	OutputDir        string       `yaml:"output_dir" koanf:"output_dir"`
	DefaultSubject   string       `yaml:"default_subject" koanf:"default_subject"`
	Search           SearchConfig `yaml:"search" koanf:"search"`
	Server           ServerConfig `yaml:"server" koanf:"server"`
}

// SearchConfig tunes the search box.
type SearchConfig struct {
	MinQuery   int `yaml:"min_query" koanf:"min_query"`
	MaxResults int `yaml:"max_results" koanf:"max_results"`
	DebounceMS int `yaml:"debounce_ms" koanf:"debounce_ms"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
