package config

import (
	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/store"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".docpress.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocumentsDir:    "documents",
		StaticDir:       "static",
		FragmentPattern: store.DefaultFragmentPattern,
		HighlightStyle:  export.DefaultStyle,
		InlineImages:    true,
		OutputDir:       "dist",
		Server: ServerConfig{
			Port: 5000,
		},
	}
}
