package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"github.com/deusflow/veckonytt/internal/config"
	"github.com/deusflow/veckonytt/internal/discord"
	"github.com/deusflow/veckonytt/internal/logger"
	"github.com/deusflow/veckonytt/internal/news"
	"github.com/deusflow/veckonytt/internal/ratelimit"
)

const (
	cmdPing = "!ping"
	cmdNews = "!news"
)

// Bot is the long-running Discord client: it answers chat commands and
// posts the digest on a cron schedule.
type Bot struct {
	cfg      *config.Config
	session  *discordgo.Session
	digester Digester
	cron     *cron.Cron
	limiter  *ratelimit.CommandLimiter
	log      *slog.Logger
}

func NewBot(cfg *config.Config, digester Digester, log *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Bot{
		cfg:      cfg,
		session:  session,
		digester: digester,
		cron:     cron.New(cron.WithLocation(loc)),
		limiter:  ratelimit.NewCommandLimiter(cfg.CommandCooldown),
		log:      logger.Default(log),
	}, nil
}

// Start connects to the gateway and arms the weekly schedule.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if b.cfg.NewsChannelID == "" {
		b.log.Warn("NEWS_CHANNEL_ID not set, weekly schedule disabled")
		return nil
	}
	if _, err := b.cron.AddFunc(b.cfg.Schedule, b.scheduledRun); err != nil {
		b.session.Close()
		return fmt.Errorf("invalid DIGEST_SCHEDULE %q: %w", b.cfg.Schedule, err)
	}
	b.cron.Start()
	b.log.Info("schedule active", "spec", b.cfg.Schedule, "timezone", b.cfg.Timezone, "channel", b.cfg.NewsChannelID)
	return nil
}

// Close stops the scheduler, waits for a running scheduled digest and
// disconnects.
func (b *Bot) Close() {
	<-b.cron.Stop().Done()
	if err := b.session.Close(); err != nil {
		b.log.Warn("closing Discord session", "error", err)
	}
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("logged in", "user", r.User.String())
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	reply := discord.ChannelSender{Session: s, ChannelID: m.ChannelID}
	b.HandleCommand(context.Background(), m.ChannelID, m.Content, reply)
}

// HandleCommand runs a chat command. Unknown text is ignored.
func (b *Bot) HandleCommand(ctx context.Context, channelID, content string, reply discord.Sender) {
	switch strings.TrimSpace(content) {
	case cmdPing:
		b.send(ctx, reply, MsgPong)

	case cmdNews:
		if !b.limiter.Allow(channelID) {
			b.send(ctx, reply, MsgCooldown)
			return
		}
		b.send(ctx, reply, MsgBuilding)

		runCtx, cancel := b.runContext(ctx)
		defer cancel()
		if err := b.PostDigest(runCtx, reply); err != nil {
			b.log.Error("manual digest failed", "channel", channelID, "error", err)
			b.send(ctx, reply, "❌ Kunde inte skapa veckosummering.\n```"+err.Error()+"```")
		}
	}
}

// PostDigest builds one digest and posts it through to. A missing feed
// list is reported in the channel rather than returned.
func (b *Bot) PostDigest(ctx context.Context, to discord.Sender) error {
	spec, err := FeedSpec(b.cfg)
	if err != nil {
		return err
	}

	msg, err := b.digester.BuildDigest(ctx, spec)
	if errors.Is(err, news.ErrNoFeeds) {
		return to.Send(ctx, MsgNoFeedsConfigured)
	}
	if err != nil {
		return err
	}
	return to.Send(ctx, msg)
}

func (b *Bot) scheduledRun() {
	ctx, cancel := b.runContext(context.Background())
	defer cancel()

	b.log.Info("scheduled digest starting")
	to := discord.ChannelSender{Session: b.session, ChannelID: b.cfg.NewsChannelID}
	if err := b.PostDigest(ctx, to); err != nil {
		b.log.Error("scheduled digest failed", "error", err)
	}
}

func (b *Bot) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.RunTimeout > 0 {
		return context.WithTimeout(ctx, b.cfg.RunTimeout)
	}
	return context.WithCancel(ctx)
}

func (b *Bot) send(ctx context.Context, to discord.Sender, content string) {
	if err := to.Send(ctx, content); err != nil {
		b.log.Error("discord send failed", "error", err)
	}
}
