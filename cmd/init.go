package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docpress configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure docpress for your project and generates a .docpress.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
