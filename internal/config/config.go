// Package config loads bot settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	BackendGemini = "gemini"
	BackendOpenAI = "openai"
)

type Config struct {
	// Discord settings
	DiscordToken  string
	NewsChannelID string

	// Feed settings
	RSSFeeds        string // comma separated, parsed per run
	FeedsConfigPath string // optional YAML list appended to RSSFeeds
	FeedUserAgent   string
	FeedTimeout     time.Duration

	// Generation backend
	Backend       string // gemini | openai
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Scheduling
	Schedule        string // cron spec, minute resolution
	Timezone        string
	CommandCooldown time.Duration
	RunTimeout      time.Duration

	// App settings
	Debug                bool
	EnableHTTPMonitoring bool
	MonitoringPort       string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment with defaults applied.
func FromEnv() *Config {
	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		NewsChannelID: os.Getenv("NEWS_CHANNEL_ID"),

		RSSFeeds:        os.Getenv("RSS_FEEDS"),
		FeedsConfigPath: os.Getenv("FEEDS_CONFIG_PATH"),
		FeedUserAgent:   getEnvOrDefault("FEED_USER_AGENT", "vr-ar-ai-news-bot/1.0"),
		FeedTimeout:     getEnvDurationOrDefault("FEED_TIMEOUT", 20*time.Second),

		Backend:       strings.ToLower(getEnvOrDefault("LLM_BACKEND", BackendGemini)),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		Schedule:        getEnvOrDefault("DIGEST_SCHEDULE", "0 9 * * 1"),
		Timezone:        getEnvOrDefault("DIGEST_TIMEZONE", "Europe/Stockholm"),
		CommandCooldown: getEnvDurationOrDefault("NEWS_COMMAND_COOLDOWN", 30*time.Second),
		RunTimeout:      getEnvDurationOrDefault("RUN_TIMEOUT", 5*time.Minute),

		Debug:                os.Getenv("DEBUG") == "true",
		EnableHTTPMonitoring: os.Getenv("ENABLE_HTTP_MONITORING") == "true",
		MonitoringPort:       getEnvOrDefault("MONITORING_PORT", "8080"),
	}
	return cfg
}

// Model returns the model identifier of the selected backend.
func (c *Config) Model() string {
	if c.Backend == BackendOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("45s") or plain seconds ("45").
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs := getEnvIntOrDefault(key, 0); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks what the long-running bot needs.
func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	switch c.Backend {
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("LLM_BACKEND must be '%s' or '%s'", BackendGemini, BackendOpenAI)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("DIGEST_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// ValidateJob checks what the one-shot job needs: everything the bot needs
// plus the target channel.
func (c *Config) ValidateJob() error {
	if c.NewsChannelID == "" {
		return fmt.Errorf("NEWS_CHANNEL_ID is required")
	}
	return c.Validate()
}
