package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/gemini"
	"github.com/deusflow/veckonytt/internal/llm"
	"github.com/deusflow/veckonytt/internal/news"
	"github.com/deusflow/veckonytt/internal/rss"
	"github.com/deusflow/veckonytt/internal/summary"
)

// User-facing texts posted by the shells.
const (
	MsgNoFeedsConfigured = "⚠️ Ingen RSS_FEEDS är satt i .env"
	MsgBuilding          = "⏳ Bygger veckosummering från RSS (senaste artiklarna)..."
	MsgPong              = "Botten är vaken! 🧠"
	MsgBackendOverloaded = "⚠️ Veckosummering kunde inte genereras just nu (Gemini överbelastad). Jag försöker igen nästa schemalagda körning."
	MsgCooldown          = "⏳ Vänta lite innan du kör !news igen."
)

// Digester builds the message for one run. news.Pipeline implements it.
type Digester interface {
	BuildDigest(ctx context.Context, feedSpec string) (string, error)
}

// NewBackend returns the configured generation backend and a function
// releasing its resources.
func NewBackend(ctx context.Context, cfg *config.Config) (summary.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), func() {}, nil
	case config.BackendGemini:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM backend %q", cfg.Backend)
	}
}

// NewPipeline wires feed source, generator and backend into one pipeline.
func NewPipeline(ctx context.Context, cfg *config.Config, log *slog.Logger) (*news.Pipeline, func(), error) {
	backend, closeBackend, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	source := rss.NewSource(cfg.FeedUserAgent, cfg.FeedTimeout, log)
	generator := summary.NewGenerator(backend, cfg.Model(), log)
	return news.NewPipeline(source, generator, log), closeBackend, nil
}

// FeedSpec returns RSS_FEEDS with the entries of FEEDS_CONFIG_PATH appended.
func FeedSpec(cfg *config.Config) (string, error) {
	if cfg.FeedsConfigPath == "" {
		return cfg.RSSFeeds, nil
	}
	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return "", fmt.Errorf("load feeds file %s: %w", cfg.FeedsConfigPath, err)
	}
	return news.JoinFeedSpec(cfg.RSSFeeds, feeds), nil
}
