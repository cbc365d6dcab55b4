package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
	"github.com/deusflow/veckonytt/internal/news"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<title>Road to VR</title>
		<item>
			<title>Quest &lt;b&gt;SDK&lt;/b&gt; 70 released</title>
			<link>https://roadtovr.example/quest-sdk-70</link>
			<pubDate>Wed, 03 May 2023 15:04:05 +0000</pubDate>
		</item>
		<item>
			<link>https://roadtovr.example/untitled</link>
		</item>
	</channel>
</rss>`

const untitledFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
	<channel>
		<item>
			<title>Only item</title>
			<pubDate>garbled date</pubDate>
		</item>
	</channel>
</rss>`

func newTestSource() (*Source, *metrics.Metrics) {
	m := metrics.New()
	return &Source{
		UserAgent: DefaultUserAgent,
		Timeout:   5 * time.Second,
		Metrics:   m,
		Log:       logger.Discard(),
	}, m
}

func TestSource_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	src, m := newTestSource()
	got := src.Fetch(context.Background(), srv.URL)

	require.Len(t, got, 2)
	assert.Equal(t, news.Article{
		Source: "Road to VR",
		Title:  "Quest SDK 70 released",
		Link:   "https://roadtovr.example/quest-sdk-70",
		Date:   "2023-05-03T15:04:05Z",
	}, got[0])
	assert.Equal(t, news.UntitledPlaceholder, got[1].Title)
	assert.Equal(t, "", got[1].Date)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.EqualValues(t, 1, m.GetStats()["feeds_fetched"])
}

func TestSource_FallsBackToURLAndRawDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(untitledFeed))
	}))
	defer srv.Close()

	src, _ := newTestSource()
	got := src.Fetch(context.Background(), srv.URL)

	require.Len(t, got, 1)
	assert.Equal(t, srv.URL, got[0].Source)
	assert.Equal(t, "", got[0].Link)
	assert.Equal(t, "garbled date", got[0].Date)
}

func TestSource_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not a feed", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			src, m := newTestSource()
			got := src.Fetch(context.Background(), srv.URL)
			assert.NotNil(t, got)
			assert.Empty(t, got)
			assert.EqualValues(t, 1, m.GetStats()["feeds_failed"])
		})
	}
}

func TestSource_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	src, _ := newTestSource()
	src.Timeout = 50 * time.Millisecond
	assert.Empty(t, src.Fetch(context.Background(), srv.URL))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", CleanText("Tom &amp; Jerry"))
	assert.Equal(t, "Bold news", CleanText("<b>Bold</b>   news"))
	assert.Equal(t, "plain", CleanText("  plain\n"))
	assert.Equal(t, "", CleanText(""))
}

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - https://a.example/rss\n  - https://b.example/atom\n"), 0o644))

	feeds, err := LoadFeeds(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/atom"}, feeds)

	_, err = LoadFeeds(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
