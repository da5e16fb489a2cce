package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docpress",
	Short: "Render multi-page HTML documents from templated page fragments",
	Long: `Docpress renders documents stored as directories of HTML page fragments,
an optional data.json and an optional style.css. Documents are served over
HTTP with raw and highlighted source views, exported as a self-contained
static site, or exposed to AI agents via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
