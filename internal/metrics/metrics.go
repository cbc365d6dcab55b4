package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedsFailed        int64
	ArticlesCollected  int64
	DigestsBuilt       int64
	DigestsFailed      int64
	BackendRetries     int64
	DiscordMessages    int64
	DiscordSendFailure int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool

	registry    *prometheus.Registry
	feeds       *prometheus.CounterVec
	articles    prometheus.Counter
	digests     *prometheus.CounterVec
	retries     prometheus.Counter
	messages    *prometheus.CounterVec
	runDuration prometheus.Histogram
}

var Global = New()

// New returns a Metrics with its own Prometheus registry.
func New() *Metrics {
	m := &Metrics{
		IsHealthy: true,
		registry:  prometheus.NewRegistry(),
		feeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veckonytt",
			Name:      "feed_fetches_total",
			Help:      "Feed fetch attempts by result.",
		}, []string{"result"}),
		articles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "veckonytt",
			Name:      "articles_collected_total",
			Help:      "Articles kept after per-feed ranking.",
		}),
		digests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veckonytt",
			Name:      "digest_runs_total",
			Help:      "Digest pipeline runs by outcome.",
		}, []string{"outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "veckonytt",
			Name:      "backend_retries_total",
			Help:      "Generation backend retries after an overload error.",
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veckonytt",
			Name:      "discord_messages_total",
			Help:      "Discord messages by result.",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "veckonytt",
			Name:      "digest_run_seconds",
			Help:      "Wall time of a digest pipeline run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		}),
	}
	m.registry.MustRegister(m.feeds, m.articles, m.digests, m.retries, m.messages, m.runDuration)
	return m
}

func (m *Metrics) IncrementFeedFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
	m.feeds.WithLabelValues("ok").Inc()
}

func (m *Metrics) IncrementFeedFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed++
	m.feeds.WithLabelValues("error").Inc()
}

func (m *Metrics) AddArticles(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected += int64(n)
	m.articles.Add(float64(n))
}

func (m *Metrics) IncrementBackendRetries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackendRetries++
	m.retries.Inc()
}

// RecordDigest records a finished pipeline run. outcome is "ok", "empty"
// or "error".
func (m *Metrics) RecordDigest(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if outcome == "error" {
		m.DigestsFailed++
	} else {
		m.DigestsBuilt++
	}
	m.digests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementDiscordMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DiscordMessages++
	m.messages.WithLabelValues("ok").Inc()
}

func (m *Metrics) IncrementDiscordSendFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DiscordSendFailure++
	m.messages.WithLabelValues("error").Inc()
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++
	m.runDuration.Observe(duration.Seconds())

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

// Handler serves the Prometheus exposition of this instance.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":              m.FeedsFetched,
		"feeds_failed":               m.FeedsFailed,
		"articles_collected":         m.ArticlesCollected,
		"digests_built":              m.DigestsBuilt,
		"digests_failed":             m.DigestsFailed,
		"backend_retries":            m.BackendRetries,
		"discord_messages_sent":      m.DiscordMessages,
		"discord_send_failures":      m.DiscordSendFailure,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
