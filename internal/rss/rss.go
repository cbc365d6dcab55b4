package rss

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
	"github.com/deusflow/veckonytt/internal/news"
)

const DefaultUserAgent = "vr-ar-ai-news-bot/1.0"

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads RSS feeds list from YAML file
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Source fetches one feed at a time and never fails: a broken feed is
// logged and yields no articles.
type Source struct {
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client // nil means http.DefaultClient
	Metrics   *metrics.Metrics
	Log       *slog.Logger
}

func NewSource(userAgent string, timeout time.Duration, log *slog.Logger) *Source {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Source{
		UserAgent: userAgent,
		Timeout:   timeout,
		Metrics:   metrics.Global,
		Log:       logger.Default(log),
	}
}

// Fetch implements news.FeedSource.
func (s *Source) Fetch(ctx context.Context, url string) []news.Article {
	log := logger.Default(s.Log)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	parser := gofeed.NewParser()
	parser.UserAgent = s.UserAgent
	if s.Client != nil {
		parser.Client = s.Client
	}

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		log.Error("skipping broken or unreachable feed", "url", url, "error", err)
		if s.Metrics != nil {
			s.Metrics.IncrementFeedFailed()
		}
		return []news.Article{}
	}
	if s.Metrics != nil {
		s.Metrics.IncrementFeedFetched()
	}

	articles := ToArticles(url, feed)
	log.Info("feed loaded", "url", url, "items", len(articles))
	return articles
}

// ToArticles converts a parsed feed, applying the article defaults.
func ToArticles(url string, feed *gofeed.Feed) []news.Article {
	source := CleanText(feed.Title)
	if source == "" {
		source = url
	}

	articles := make([]news.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, news.NewArticle(
			source,
			CleanText(item.Title),
			strings.TrimSpace(item.Link),
			itemDate(item),
		))
	}
	return articles
}

// itemDate prefers normalised timestamps, then the raw feed strings.
func itemDate(item *gofeed.Item) string {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	case strings.TrimSpace(item.Published) != "":
		return strings.TrimSpace(item.Published)
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	default:
		return strings.TrimSpace(item.Updated)
	}
}
