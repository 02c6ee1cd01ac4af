package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	redispub "github.com/mcoot/truthdare-go/internal/broadcast/redis"

	"github.com/mcoot/truthdare-go/internal/api"
	"github.com/mcoot/truthdare-go/internal/clients/truthdare"
	"github.com/mcoot/truthdare-go/internal/config"
	"github.com/mcoot/truthdare-go/internal/factory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg config.Config, logger *slog.Logger) error {
	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:             logger,
		QuestionAPIEnabled: cfg.QuestionAPI.Enabled,
		QuestionAPI: truthdare.Config{
			BaseURL: cfg.QuestionAPI.URL,
			Timeout: cfg.QuestionAPI.Timeout,
		},
	}

	// Configure Redis if a URL is set
	if cfg.Redis.URL != "" {
		redisCfg := redispub.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.KeyPrefix = cfg.Redis.ChannelPrefix
		redisCfg.StateTTL = cfg.Redis.StateTTL
		redisCfg.ClosedTTL = cfg.Redis.ClosedTTL
		factoryCfg.Redis = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close error", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Orchestrator:   app.Orchestrator,
		Rooms:          app.Registry,
		HubManager:     app.HubManager,
		SSEBroadcaster: app.SSEBroadcaster,
		WSManager:      app.WSManager,
		WSBroadcaster:  app.WSBroadcaster,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, logger)
	server.RegisterOnShutdown(func() {
		app.HubManager.CloseAll()
		app.WSManager.CloseAll()
	})

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.Bool("question_api", cfg.QuestionAPI.Enabled),
		slog.Bool("redis", cfg.Redis.URL != ""),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		reapIdleHubs(ctx, app, cfg.HubCleanupInterval)
		return nil
	})
	return g.Wait()
}

// reapIdleHubs closes SSE hubs nobody is listening to
func reapIdleHubs(ctx context.Context, app *factory.App, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.HubManager.CleanupEmptyHubs()
		}
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	// Level was checked by config.Load
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
