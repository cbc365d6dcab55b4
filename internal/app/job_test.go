package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/news"
)

type fakeDigester struct {
	msg     string
	err     error
	gotSpec string
}

func (f *fakeDigester) BuildDigest(_ context.Context, spec string) (string, error) {
	f.gotSpec = spec
	return f.msg, f.err
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, content string) error {
	f.sent = append(f.sent, content)
	return f.err
}

func jobConfig() *config.Config {
	return &config.Config{RSSFeeds: "https://a.example/rss", NewsChannelID: "1"}
}

func TestRunJob(t *testing.T) {
	tests := []struct {
		name     string
		digester *fakeDigester
		sendErr  error
		wantCode int
		wantSent []string
	}{
		{
			name:     "digest posted",
			digester: &fakeDigester{msg: news.Header + "body"},
			wantCode: 0,
			wantSent: []string{news.Header + "body"},
		},
		{
			name:     "no articles message still posted",
			digester: &fakeDigester{msg: news.NoArticlesMessage},
			wantCode: 0,
			wantSent: []string{news.NoArticlesMessage},
		},
		{
			name:     "overload posts notice and succeeds",
			digester: &fakeDigester{err: fmt.Errorf("summarize: %w", errors.New("503 Service Unavailable"))},
			wantCode: 0,
			wantSent: []string{MsgBackendOverloaded},
		},
		{
			name:     "overload notice failure still succeeds",
			digester: &fakeDigester{err: errors.New("model overloaded")},
			sendErr:  errors.New("discord down"),
			wantCode: 0,
			wantSent: []string{MsgBackendOverloaded},
		},
		{
			name:     "other backend error fails",
			digester: &fakeDigester{err: errors.New("403 permission denied")},
			wantCode: 1,
		},
		{
			name:     "missing feeds fails",
			digester: &fakeDigester{err: news.ErrNoFeeds},
			wantCode: 1,
		},
		{
			name:     "send failure fails",
			digester: &fakeDigester{msg: "digest"},
			sendErr:  errors.New("discord down"),
			wantCode: 1,
			wantSent: []string{"digest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.sendErr}
			code := RunJob(context.Background(), jobConfig(), tt.digester, sender, logger.Discard())

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantSent, sender.sent)
			assert.Equal(t, "https://a.example/rss", tt.digester.gotSpec)
		})
	}
}

func TestFeedSpec_MergesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - https://b.example/rss\n"), 0o644))

	cfg := &config.Config{RSSFeeds: "https://a.example/rss", FeedsConfigPath: path}
	spec, err := FeedSpec(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/rss,https://b.example/rss", spec)

	cfg.FeedsConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = FeedSpec(cfg)
	assert.Error(t, err)
}
