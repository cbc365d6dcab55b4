// Package summary turns a ranked batch of articles into a Swedish weekly
// digest using a text generation backend.
package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
	"github.com/deusflow/veckonytt/internal/news"
	"github.com/deusflow/veckonytt/internal/retry"
)

// Backend generates a completion for prompt with the given model.
type Backend interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Request is one immutable summarization request.
type Request struct {
	Model    string
	Articles []news.Article
}

const MaxAttempts = 3

// RetryDelays are the pauses before attempt 2 and attempt 3.
var RetryDelays = []time.Duration{1500 * time.Millisecond, 3000 * time.Millisecond}

var ErrEmptyResponse = errors.New("empty response from generation backend")

type Generator struct {
	Backend Backend
	Model   string

	// Sleep replaces the pause between attempts, mainly for tests.
	Sleep   func(ctx context.Context, d time.Duration) error
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

func NewGenerator(backend Backend, model string, log *slog.Logger) *Generator {
	return &Generator{
		Backend: backend,
		Model:   model,
		Metrics: metrics.Global,
		Log:     logger.Default(log),
	}
}

// Summarize implements news.Summarizer.
func (g *Generator) Summarize(ctx context.Context, items []news.Article) (string, error) {
	return g.Generate(ctx, Request{Model: g.Model, Articles: items})
}

// Generate calls the backend up to MaxAttempts times, retrying only while
// the backend reports overload. The last backend error is returned as is.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	log := logger.Default(g.Log)
	prompt := BuildPrompt(req.Articles)

	var text string
	err := retry.WithRetry(ctx, retry.RetryConfig{
		MaxAttempts: MaxAttempts,
		Delays:      RetryDelays,
		Retryable:   IsOverloaded,
		Sleep:       g.Sleep,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			log.Warn("generation backend overloaded, retrying",
				"attempt", attempt, "max", MaxAttempts, "wait", wait, "error", err)
			if g.Metrics != nil {
				g.Metrics.IncrementBackendRetries()
			}
		},
	}, func() error {
		out, err := g.Backend.Generate(ctx, req.Model, prompt)
		if err != nil {
			return err
		}
		if out == "" {
			return ErrEmptyResponse
		}
		text = out
		return nil
	})
	if err != nil {
		log.Error("generation failed", "model", req.Model, "error", err)
		return "", err
	}

	log.Info("digest generated", "model", req.Model, "articles", len(req.Articles), "chars", len([]rune(text)))
	return text, nil
}
