package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Aidin1998/laptrack/api"
	"github.com/Aidin1998/laptrack/internal/auth"
	"github.com/Aidin1998/laptrack/internal/ratelimit"
	"github.com/Aidin1998/laptrack/internal/telemetry"
)

const serviceName = "laptrack"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: serviceName,
		Enabled:     cfg.Tracing,
	})
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTelemetry(context.Background()) }()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close(context.Background()) }()

	authMW, err := auth.NewMiddleware(cfg.JWT, log)
	if err != nil {
		return err
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limitStore, err := ratelimit.NewStore(a.redis)
		if err != nil {
			return err
		}
		if limiter, err = ratelimit.Middleware(cfg.RateLimit.Rate, limitStore, log); err != nil {
			return err
		}
	}

	gin.SetMode(gin.ReleaseMode)
	server, err := api.NewServer(api.Options{
		Logger:         log,
		Inventory:      a.inventory,
		Auth:           a.auth,
		AuthMiddleware: authMW,
		Store:          a.store,
		RateLimiter:    limiter,
		TrustedProxies: cfg.Server.TrustedProxies,
		CORSOrigins:    cfg.Server.CORSOrigins,
		Tracing:        cfg.Tracing,
		ServiceName:    serviceName,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting API server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		err = errors.Join(err, a.Close(shutdownCtx))
		return errors.Join(err, shutdownTelemetry(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server exited properly")
	return nil
}
