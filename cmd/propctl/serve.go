package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/baseline"
	"github.com/joshuapare/propkit/internal/metrics"
	"github.com/joshuapare/propkit/internal/server"
	"github.com/joshuapare/propkit/pkg/detect"
)

var (
	serveAddr     string
	serveBaseline bool
)

func init() {
	cmd := newServeCmd()
	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&serveBaseline, "baseline", false, "Enable /v1/baseline using the baseline database")
	rootCmd.AddCommand(cmd)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve properties, tamper checks and metrics over HTTP",
		Long: `The serve command exposes the property area over a JSON HTTP API:

  GET /v1/properties[?prefix=]   all ro.* properties
  GET /v1/properties/:key        one property
  GET /v1/device                 device identity
  GET /v1/tamper                 critical property check
  GET /v1/verdict                hook, root and property checks
  GET /v1/baseline               comparison with the latest snapshot
  GET /metrics                   Prometheus metrics
  GET /healthz                   liveness

Example:
  propctl serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
	return cmd
}

func runServe(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := server.Options{
		Property: propertyOptions(),
		Checks:   detect.DefaultChecks(cfg.DetectConfig(logger)),
		Metrics:  metrics.New(reg, metrics.DefaultNamespace),
		Gatherer: reg,
		Logger:   logger,
		Mode:     cfg.Server.Mode,
	}
	if serveBaseline {
		db, err := baseline.OpenDB(&cfg.Baseline, logger)
		if err != nil {
			return err
		}
		opts.Baseline = baseline.NewRepository(db, logger)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	return server.Serve(ctx, addr, server.NewRouter(opts), logger)
}
