package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-resty/resty/v2"

	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/metrics"
	"github.com/deusflow/veckonytt/internal/retry"
)

const DefaultAPIBase = "https://discord.com/api/v10"

// Sender posts a plain text message somewhere in Discord.
type Sender interface {
	Send(ctx context.Context, content string) error
}

// APIError is a non-2xx answer from the Discord REST API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API error (%d): %s", e.Status, e.Body)
}

func (e *APIError) temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// RESTSender posts to one channel through the REST API. It needs no
// gateway connection, which suits one-shot jobs.
type RESTSender struct {
	client    *resty.Client
	channelID string
	retry     retry.RetryConfig
	metrics   *metrics.Metrics
	log       *slog.Logger
}

func NewRESTSender(token, channelID string, log *slog.Logger) *RESTSender {
	return NewRESTSenderWithBase(DefaultAPIBase, token, channelID, log)
}

func NewRESTSenderWithBase(apiBase, token, channelID string, log *slog.Logger) *RESTSender {
	client := resty.New().
		SetBaseURL(apiBase).
		SetTimeout(30*time.Second).
		SetHeader("Authorization", "Bot "+token).
		SetHeader("Content-Type", "application/json")

	return &RESTSender{
		client:    client,
		channelID: channelID,
		retry: retry.RetryConfig{
			MaxAttempts: 3,
			Delay:       2 * time.Second,
			Backoff:     true,
			Retryable: func(err error) bool {
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					return apiErr.temporary()
				}
				return true
			},
		},
		metrics: metrics.Global,
		log:     logger.Default(log),
	}
}

// Send posts content, retrying on transport errors, 429 and 5xx.
func (s *RESTSender) Send(ctx context.Context, content string) error {
	cfg := s.retry
	cfg.OnRetry = func(attempt int, wait time.Duration, err error) {
		s.log.Warn("discord send failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}

	err := retry.WithRetry(ctx, cfg, func() error {
		return s.sendOnce(ctx, content)
	})
	if err != nil {
		s.metrics.IncrementDiscordSendFailure()
		return err
	}

	s.metrics.IncrementDiscordMessages()
	s.log.Info("message posted to Discord", "channel", s.channelID, "chars", len([]rune(content)))
	return nil
}

func (s *RESTSender) sendOnce(ctx context.Context, content string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("channelID", s.channelID).
		SetBody(map[string]string{"content": content}).
		Post("/channels/{channelID}/messages")
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

// ChannelSender posts through an open gateway session.
type ChannelSender struct {
	Session   *discordgo.Session
	ChannelID string
}

func (c ChannelSender) Send(ctx context.Context, content string) error {
	if _, err := c.Session.ChannelMessageSend(c.ChannelID, content, discordgo.WithContext(ctx)); err != nil {
		metrics.Global.IncrementDiscordSendFailure()
		return fmt.Errorf("send to channel %s: %w", c.ChannelID, err)
	}
	metrics.Global.IncrementDiscordMessages()
	return nil
}
