package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/webserver"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scorecard JSON API",
		Long: `Serve the scorecard calculators as a JSON API on 127.0.0.1.

Endpoints:
  GET  /api/health      Health check
  GET  /api/catalog     Metric catalog and default selection
  POST /api/categorize  Categorize metrics
  POST /api/benchmarks  Propose benchmarks
  POST /api/strategy    Profile a strategy
  POST /api/report      Render a Markdown or HTML report

Cross-origin requests are only answered for server.allowed_origins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Server.Port
			}
			c, err := a.categorizer()
			if err != nil {
				return err
			}
			defer closeCategorizer(c)

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				AllowedOrigins: a.cfg.Server.AllowedOrigins,
				Categorizer:    c,
				Catalog:        a.cfg.Metrics.Catalog,
				Defaults:       a.cfg.Metrics.Default,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "scorecard API: http://%s\n", srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from .scorecard.yaml)")

	return cmd
}
