package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix marks environment overrides, e.g. DOCPRESS_DOCUMENTS_DIR or
// DOCPRESS_SERVER__PORT.
const envPrefix = "DOCPRESS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCPRESS_*).
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

	// A double underscore separates nested keys so that single underscores
	// inside key names survive: DOCPRESS_SERVER__ALLOW_ALL_ORIGINS.
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
	if c.DocumentsDir == "" {
		return fmt.Errorf("documents_dir is required")
	}

	if c.FragmentPattern == "" {
		return fmt.Errorf("fragment_pattern is required")
	}
	if !doublestar.ValidatePattern(c.FragmentPattern) {
		return fmt.Errorf("invalid fragment_pattern %q", c.FragmentPattern)
	}

	if c.HighlightStyle != "" {
		if _, ok := styles.Registry[strings.ToLower(c.HighlightStyle)]; !ok {
			return fmt.Errorf("unknown highlight_style %q", c.HighlightStyle)
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	return nil
}
