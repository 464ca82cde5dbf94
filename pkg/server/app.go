package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockPulse/internal/handler/api"
	"StockPulse/internal/repository"
	icache "StockPulse/internal/service/cache"
	"StockPulse/internal/usecase"
	"StockPulse/pkg/config"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
)

// App encapsulates the serving process lifecycle: HTTP server plus the
// resources behind the serving context.
type App struct {
	cfg         *config.Config
	serving     *usecase.ServingContext
	artifacts   *repository.BadgerArtifactStore
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, serving *usecase.ServingContext, artifacts *repository.BadgerArtifactStore) *App {
	return &App{cfg: cfg, serving: serving, artifacts: artifacts}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	// init app logger (console info by default)
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}

	httpHandler := a.httpHandler
	if httpHandler == nil {
		h := api.NewPredictHandler(l, a.serving)
		h.SetCache(a.bytesCache())
		httpHandler = h
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("serving started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Any("health", a.serving.Health()),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(context.Background())
}

// bytesCache picks the handler-level response cache backend: redis when
// enabled in config, in-process TTL cache otherwise.
func (a *App) bytesCache() icache.BytesCache {
	r := a.cfg.Cache.Redis
	if r.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     fmt.Sprintf("%s:%d", r.Host, r.Port),
			Password: r.Password,
			DB:       r.DB,
		})
	}
	return icache.NewTTLCache()
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.artifacts != nil {
		if err := a.artifacts.Close(); err != nil {
			l.Warn("artifact store close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
