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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/localsearch/internal/config"
	dbRedis "github.com/kailas-cloud/localsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/localsearch/internal/logger"
	"github.com/kailas-cloud/localsearch/internal/metrics"
	usagerepo "github.com/kailas-cloud/localsearch/internal/repository/usage"
	"github.com/kailas-cloud/localsearch/internal/seed"
	chiTransport "github.com/kailas-cloud/localsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/localsearch/internal/usecase/health"
	usageuc "github.com/kailas-cloud/localsearch/internal/usecase/usage"
	"github.com/kailas-cloud/localsearch/internal/version"
	localsearch "github.com/kailas-cloud/localsearch/pkg/sdk"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			logger, err := logpkg.NewLogger(flags.env, logpkg.Options{
				Level:   cfg.Logging.Level,
				Version: version.Version,
			})
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting localsearch API server",
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend", cfg.Search.Backend),
		zap.String("usage_backend", cfg.Usage.Backend),
	)

	healthSvc := healthuc.New()

	// Usage counters: in-process or redis.
	retention := time.Duration(cfg.Usage.RetentionDays) * 24 * time.Hour
	var counters usageuc.CounterStore
	switch cfg.Usage.Backend {
	case config.UsageRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Redis.Addrs,
			Username:   cfg.Redis.Username,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: "localsearch",
		})
		if err != nil {
			return fmt.Errorf("create redis store: %w", err)
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		counters = usagerepo.New(store, retention)
		healthSvc.With("usage_store", store)
	default:
		counters = usagerepo.NewMemory(retention)
	}
	tracker := usageuc.NewTracker(counters, logger)
	usageSvc := usageuc.New(tracker)

	backend := localsearch.Backend(cfg.Search.Backend)
	indexes := localsearch.NewService(
		localsearch.WithSearchParams(localsearch.Params(cfg.Search.Params())),
		localsearch.WithQueryCacheSize(cfg.Search.QueryCacheSize),
		localsearch.WithPrometheus(prometheus.DefaultRegisterer),
		localsearch.WithReporter(tracker),
	)

	loader := seed.NewLoader(indexes, backend, logger)
	if len(cfg.Seeds.Paths) > 0 {
		if err := loader.LoadAll(ctx, cfg.Seeds.Paths); err != nil {
			logger.Warn("Some seed files failed to load", zap.Error(err))
		}
		healthSvc.With("seeds", loader)
	}

	server := chiTransport.NewServer(indexes, usageSvc, healthSvc, backend, logger).
		WithDefaultLimit(uint32(cfg.Search.MaxResults)) //nolint:gosec // validated gte=0

	httpMetrics, err := metrics.NewHTTP(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("http metrics: %w", err)
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(chiTransport.APIKeys{
		Admin:  cfg.Auth.APIKeys,
		Search: cfg.Auth.SearchKeys,
	}))
	r.Use(httpMetrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: invalidParamHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		tracker.Run(gctx, time.Duration(cfg.Usage.FlushIntervalSec)*time.Second)
		return nil
	})
	if cfg.Seeds.Watch && len(cfg.Seeds.Paths) > 0 {
		g.Go(func() error {
			return loader.Watch(gctx, cfg.Seeds.Paths, seed.DefaultDebounce)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
