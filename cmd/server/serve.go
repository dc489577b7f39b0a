package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/socialfeed/backend/internal/auth"
	"github.com/anonto42/socialfeed/backend/internal/handlers"
	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/repositories"
	"github.com/anonto42/socialfeed/backend/internal/router"
	"github.com/anonto42/socialfeed/backend/pkg/config"
	"github.com/anonto42/socialfeed/backend/pkg/metrics"
	"github.com/anonto42/socialfeed/backend/pkg/storage"
	"github.com/anonto42/socialfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the metrics listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.CloseDB() // Ensure database connections are closed when serve exits

	if err := repositories.AutoMigrate(db.SQL); err != nil {
		return errors.Wrap(err, "failed to auto migrate models")
	}
	log.Info("Database migrations completed.")

	store, err := storage.New(cfg, log)
	if err != nil {
		return err
	}
	if s3Store, ok := store.(*storage.S3Storage); ok {
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return err
		}
	}

	var limiter middleware.RateLimiter
	if db.Redis != nil {
		limiter = middleware.NewRedisRateLimiter(db.Redis, cfg.AuthRateLimit, cfg.AuthRateWindow)
	} else {
		limiter = middleware.NewLocalRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	// Setup global middleware
	config.SetupMiddleware(e, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Dependencies{
		DB:      db.SQL,
		Logger:  log,
		Tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:  auth.NewPasswordHasher(0),
		Storage: store,
		Limiter: limiter,
		Metrics: m,
	})

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("API server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "api server")
		}
		return nil
	})
	g.Go(func() error {
		log.WithField("port", cfg.MetricsPort).Info("Metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("api server shutdown")
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("metrics server shutdown")
		}
		return nil
	})

	return g.Wait()
}
