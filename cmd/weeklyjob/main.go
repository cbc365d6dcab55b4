// Command weeklyjob builds one digest, posts it through the Discord REST
// API and exits. Meant for external schedulers such as CI cron.
package main

import (
	"context"
	"os"

	"github.com/deusflow/veckonytt/internal/app"
	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/discord"
	"github.com/deusflow/veckonytt/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		return 1
	}
	logger.Init(cfg.Debug)

	if err := cfg.ValidateJob(); err != nil {
		logger.Error("config error", "error", err)
		return 1
	}

	ctx := context.Background()
	pipeline, closeBackend, err := app.NewPipeline(ctx, cfg, logger.Logger)
	if err != nil {
		logger.Error("backend setup failed", "error", err)
		return 1
	}
	defer closeBackend()

	sender := discord.NewRESTSender(cfg.DiscordToken, cfg.NewsChannelID, logger.Logger)
	return app.RunJob(ctx, cfg, pipeline, sender, logger.Logger)
}
