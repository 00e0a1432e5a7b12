package main

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

	"github.com/okian/dexkeeper/internal/adapters/http/api"
	"github.com/okian/dexkeeper/internal/adapters/http/swagger"
	"github.com/okian/dexkeeper/internal/adapters/refdata"
	"github.com/okian/dexkeeper/internal/adapters/repository"
	service "github.com/okian/dexkeeper/internal/app"
	"github.com/okian/dexkeeper/internal/config"
	"github.com/okian/dexkeeper/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 15 * time.Second
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server. Configuration is layered: defaults, then the
YAML file named by --config or DEXKEEPER_CONFIG, then DEXKEEPER_* env vars.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := os.Setenv(config.EnvConfigPath, configPath); err != nil {
					return fmt.Errorf("set config path: %w", err)
				}
			}

			// Root context with cancel on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	return cmd
}

// serve runs the server until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, handler, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// buildApp wires the store, reference data, service and routes described by cfg.
// The returned service is started; the caller stops it.
func buildApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*service.Service, http.Handler, error) {
	refs, err := loadReferences(cfg.RefdataDir)
	if err != nil {
		return nil, nil, err
	}

	var store repository.Store
	switch cfg.Storage {
	case config.StorageBadger:
		bs, err := repository.NewBadgerStore(ctx, cfg.DataPath, repository.WithLogger(log.Named("badger")))
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store: %w", err)
		}
		store = bs
	default:
		store = repository.NewMemoryStore()
	}

	svc := service.New(
		service.WithLogger(log.Named("service")),
		service.WithStore(store),
		service.WithReferenceData(refs),
		service.WithMaxPageSize(cfg.MaxPageSize),
	)
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("start service: %w", err)
	}

	server := api.NewServer(svc, refs,
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithRateLimit(cfg.RateLimitRPM),
		api.WithMount(swagger.MountPath, swagger.Handler()),
	)
	return svc, server.Routes(), nil
}

// loadReferences reads species and move tables from dir, or the embedded tables when dir is empty.
func loadReferences(dir string) (*refdata.Provider, error) {
	if dir == "" {
		return refdata.Embedded()
	}
	refs, err := refdata.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load reference data from %s: %w", dir, err)
	}
	return refs, nil
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Status refreshes the collection size gauge as a side effect.
			_ = svc.Status(ctx)
		}
	}
}
