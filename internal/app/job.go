package app

import (
	"context"
	"log/slog"

	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/discord"
	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/summary"
)

// RunJob performs one unattended digest run and returns the process exit
// code. An overloaded backend is reported to the channel and still counts
// as success, so the external scheduler does not flag the run.
func RunJob(ctx context.Context, cfg *config.Config, digester Digester, sender discord.Sender, log *slog.Logger) int {
	log = logger.Default(log)

	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	spec, err := FeedSpec(cfg)
	if err != nil {
		log.Error("job failed", "error", err)
		return 1
	}

	msg, err := digester.BuildDigest(ctx, spec)
	if err != nil {
		log.Error("job failed", "error", err)
		if !summary.IsOverloaded(err) {
			return 1
		}
		if sendErr := sender.Send(ctx, MsgBackendOverloaded); sendErr != nil {
			log.Error("could not post overload notice", "error", sendErr)
		}
		return 0
	}

	if err := sender.Send(ctx, msg); err != nil {
		log.Error("job failed", "error", err)
		return 1
	}

	log.Info("done, digest posted to Discord", "chars", len([]rune(msg)))
	return 0
}
