package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document rendering server",
	Long:  `Starts the HTTP server that renders documents on every request, with an index page, raw and highlighted source views, Markdown and PDF renditions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("dev") {
			cfg.Server.AllowAllOrigins, _ = cmd.Flags().GetBool("dev")
		}

		a := buildApp(cfg)
		srv := server.New(server.Config{
			Port:      cfg.Server.Port,
			StaticDir: cfg.StaticDir,
			AllowAll:  cfg.Server.AllowAllOrigins,
		}, a.store, a.layout, a.exporter)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "docpress %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Documents: %s\n", cfg.DocumentsDir)
		if verbose {
			templates := cfg.TemplatesDir
			if templates == "" {
				templates = "(built-in)"
			}
			fmt.Fprintf(os.Stderr, "  Templates: %s\n", templates)
			fmt.Fprintf(os.Stderr, "  Static:    %s\n", cfg.StaticDir)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 5000, "port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("dev", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
