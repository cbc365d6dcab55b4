package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
)

// ErrNoFeeds means the feed list was empty after parsing.
var ErrNoFeeds = errors.New("RSS_FEEDS saknas")

// FeedSource turns a feed URL into articles. Implementations swallow their
// own errors and return nothing for a broken feed.
type FeedSource interface {
	Fetch(ctx context.Context, url string) []Article
}

// Summarizer condenses a ranked batch into digest text.
type Summarizer interface {
	Summarize(ctx context.Context, items []Article) (string, error)
}

// Pipeline fetches, ranks, summarizes and assembles one digest per call.
// It holds no per-run state, so concurrent calls are safe.
type Pipeline struct {
	Feeds      FeedSource
	Summarizer Summarizer
	Metrics    *metrics.Metrics
	Log        *slog.Logger
}

func NewPipeline(feeds FeedSource, summarizer Summarizer, log *slog.Logger) *Pipeline {
	return &Pipeline{
		Feeds:      feeds,
		Summarizer: summarizer,
		Metrics:    metrics.Global,
		Log:        logger.Default(log),
	}
}

// BuildDigest runs the whole pipeline for a comma separated feed list and
// returns the message to post. When every feed fails it returns
// NoArticlesMessage without calling the summarizer.
func (p *Pipeline) BuildDigest(ctx context.Context, feedSpec string) (string, error) {
	log := logger.Default(p.Log)
	m := p.Metrics
	if m == nil {
		m = metrics.Global
	}

	urls := ParseFeedSpec(feedSpec)
	if len(urls) == 0 {
		m.SetError(ErrNoFeeds.Error())
		return "", ErrNoFeeds
	}

	startTime := time.Now()
	defer func() {
		m.RecordProcessingTime(time.Since(startTime))
	}()

	var pool []Article
	for _, url := range urls {
		latest := TakeLatest(p.Feeds.Fetch(ctx, url), PerFeedLimit)
		pool = append(pool, latest...)
		log.Debug("feed ranked", "url", url, "items", len(latest))
	}
	m.AddArticles(len(pool))

	if len(pool) == 0 {
		log.Warn("no articles from any feed", "feeds", len(urls))
		m.RecordDigest("empty")
		m.SetLastRun()
		return NoArticlesMessage, nil
	}

	batch := TakeLatest(pool, TotalLimit)
	log.Info("summarizing", "feeds", len(urls), "pool", len(pool), "batch", len(batch))

	summary, err := p.Summarizer.Summarize(ctx, batch)
	if err != nil {
		m.RecordDigest("error")
		m.SetError(err.Error())
		return "", fmt.Errorf("summarize %d articles: %w", len(batch), err)
	}

	m.RecordDigest("ok")
	m.SetLastRun()
	return AssembleMessage(Header, summary), nil
}
