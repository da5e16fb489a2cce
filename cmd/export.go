package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/progress"
	"github.com/ziadkadry99/docpress/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every document as a self-contained static site",
	Long:  `Renders every document to a standalone HTML file with images inlined, and writes an index, the global stylesheet, a search index and a build manifest.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	exportCmd.Flags().Bool("markdown", false, "also write a Markdown rendition of each document")
	exportCmd.Flags().Bool("serve", false, "start a local HTTP server after exporting")
	exportCmd.Flags().Int("port", 8080, "port for the local server")
	exportCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	a := buildApp(cfg)
	generator := site.NewGenerator(outputDir, a.store, a.assembler, a.layout, a.exporter, a.inliner, progress.NewReporter())
	generator.Markdown, _ = cmd.Flags().GetBool("markdown")

	manifest, err := generator.Generate(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d documents, build %s)\n", outputDir, len(manifest.Documents), manifest.BuildID)
	if verbose {
		for _, d := range manifest.Documents {
			fmt.Printf("  %s  %d pages  %s\n", d.HTML, d.Pages, d.Title)
		}
	}

	if serve, _ := cmd.Flags().GetBool("serve"); serve {
		port, _ := cmd.Flags().GetInt("port")
		openBrowser, _ := cmd.Flags().GetBool("open")
		if err := site.Serve(outputDir, port, openBrowser); err != nil {
			return fmt.Errorf("serving site: %w", err)
		}
	}

	return nil
}
