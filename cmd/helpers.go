package cmd

import (
	"fmt"

	"github.com/ziadkadry99/docpress/internal/assemble"
	"github.com/ziadkadry99/docpress/internal/config"
	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/inline"
	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

// app bundles the read-only collaborators built from one configuration.
type app struct {
	cfg       *config.Config
	store     *store.Store
	assembler *assemble.Assembler
	layout    *layout.Renderer
	inliner   *inline.Inliner
	exporter  *export.Exporter
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docpress init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// buildApp wires the rendering pipeline for cfg.
func buildApp(cfg *config.Config) *app {
	s := store.New(cfg.DocumentsDir, cfg.FragmentPattern)
	a := assemble.New(s)
	r := layout.New(cfg.TemplatesDir, cfg.Style)

	var in *inline.Inliner
	if cfg.InlineImages {
		in = inline.New(cfg.StaticDir)
	}

	return &app{
		cfg:       cfg,
		store:     s,
		assembler: a,
		layout:    r,
		inliner:   in,
		exporter:  export.New(s, a, r, in, cfg.HighlightStyle),
	}
}
