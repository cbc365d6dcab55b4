package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deusflow/veckonytt/internal/app"
	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	if err := cfg.Validate(); err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	// Check if we should start HTTP server for monitoring
	if cfg.EnableHTTPMonitoring {
		go app.StartMonitoringServer(cfg.MonitoringPort, metrics.Global, logger.Logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, closeBackend, err := app.NewPipeline(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("backend setup failed", "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	bot, err := app.NewBot(cfg, pipeline, logger.Logger)
	if err != nil {
		logger.Error("bot setup failed", "error", err)
		os.Exit(1)
	}
	if err := bot.Start(); err != nil {
		logger.Error("bot start failed", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	bot.Close()
}
