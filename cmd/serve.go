package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spiffcs/goodfirst/config"
	"github.com/spiffcs/goodfirst/internal/constants"
	"github.com/spiffcs/goodfirst/internal/ghclient"
	"github.com/spiffcs/goodfirst/internal/log"
	"github.com/spiffcs/goodfirst/internal/maintenance"
	"github.com/spiffcs/goodfirst/internal/metrics"
	"github.com/spiffcs/goodfirst/internal/server"
	"github.com/spiffcs/goodfirst/internal/service"
	"github.com/spiffcs/goodfirst/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewCmdServe creates the serve command.
func NewCmdServe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the good first issue gateway (same as root goodfirst)",
		Long: `Starts the HTTP gateway. GET /github/issues searches GitHub for open
"good first issue" issues, enriches them with repository and owner data,
scores how well maintained each repository looks, and applies the
optional threshold filters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	addServeFlags(cmd, opts)
	return cmd
}

// addServeFlags adds the serve-specific flags to a command.
func addServeFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVar(&opts.Addr, "addr", constants.DefaultListenAddr, "Address to listen on")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", "", "Log format (text, json)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", constants.DefaultEnrichWorkers, "Concurrent enrichment lookups per request")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
}

// serveSettings merges explicitly set flags over the configured settings.
func serveSettings(cmd *cobra.Command, opts *Options, cfg *config.Config) config.ServerSettings {
	settings := cfg.GetServerSettings()
	if cmd.Flags().Changed("addr") {
		settings.Addr = opts.Addr
	}
	if cmd.Flags().Changed("log-format") {
		settings.LogFormat = opts.LogFormat
	}
	if cmd.Flags().Changed("workers") {
		settings.EnrichWorkers = opts.Workers
	}
	return settings
}

func runServe(cmd *cobra.Command, opts *Options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := serveSettings(cmd, opts, cfg)

	// A gateway always reports the requests it serves
	log.InitializeFormat(max(opts.Verbosity, log.LevelInfo), settings.LogFormat, os.Stderr)

	shutdownTracing, err := telemetry.InitTracing(ctx, settings.ServiceName, version, settings.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
	}()

	m := metrics.NewMetrics()

	client, err := ghclient.NewClient(ctx, cfg.GetGitHubToken(),
		ghclient.WithBaseURL(settings.APIURL),
		ghclient.WithTransport(otelhttp.NewTransport(http.DefaultTransport)),
		ghclient.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	aggregator := service.New(client,
		maintenance.NewHeuristics(cfg.GetMaintenanceWeights()),
		service.WithWorkers(settings.EnrichWorkers),
		service.WithMetrics(m),
	)

	srv := &http.Server{
		Addr:         settings.Addr,
		Handler:      server.New(aggregator, m).Routes(),
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(log.Logger().Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("gateway listening", "addr", settings.Addr, "api", settings.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gateway failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("gateway shutdown: %w", err)
	}
	log.Info("gateway stopped")

	return nil
}
