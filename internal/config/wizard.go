package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// highlightStyles are offered by the wizard. Any chroma style name is
// accepted in the config file.
var highlightStyles = []string{"monokai", "dracula", "github", "solarized-dark", "solarized-light", "vs"}

// detectDocumentsDir returns the first conventional documents directory
// present in the working directory.
func detectDocumentsDir() string {
	for _, dir := range []string{"documents", "reports", "docs"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "documents"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docpress! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Documents directory.
	docsPrompt := promptui.Prompt{
		Label:   "Documents directory",
		Default: detectDocumentsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("documents dir: %w", err)
	}
	cfg.DocumentsDir = docsDir

	// 2. Static assets.
	staticPrompt := promptui.Prompt{
		Label:   "Static assets directory",
		Default: cfg.StaticDir,
	}
	staticDir, err := staticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	cfg.StaticDir = staticDir

	// 3. Highlight style for the source views.
	stylePrompt := promptui.Select{
		Label: "Select highlight style",
		Items: highlightStyles,
	}
	_, style, err := stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}
	cfg.HighlightStyle = style

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 5. Export directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for static export",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.DocumentsDir); os.IsNotExist(err) {
		fmt.Printf("\nNote: %s does not exist yet. Create one directory per document in it.\n", cfg.DocumentsDir)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
