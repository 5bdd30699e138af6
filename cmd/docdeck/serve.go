package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/docdeck/internal/adapters/primary/http"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API",
		Long: `Start the HTTP API used by the web front end:

  GET  /health         generator and renderer status
  GET  /api/options    styles, densities and audiences
  POST /api/generate   multipart upload -> presentation and markup
  POST /api/render     markup -> PDF or HTML download
  GET  /ws/generate    generation with streamed status events

Example:
  docdeck serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().String("host", "", "Host to bind to (overrides config)")
	cmd.Flags().Bool("demo", false, "Never call the generator")
	cmd.Flags().String("model", "", "Generator model (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	cfg := a.config

	if err := a.deck.RendererStatus(ctx); err != nil {
		a.logger.Warn("marp-cli not available, rendering will fail", slog.String("error", err.Error()))
	}

	server := http.NewServer(a.deck, cfg.Server, a.logger)
	if err := server.Start(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	a.logger.Info("docdeck serving",
		slog.String("url", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)),
		slog.String("generator", a.deck.GeneratorName()))

	<-ctx.Done()
	a.logger.Info("shutting down")

	if err := server.Stop(context.Background()); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	return nil
}
