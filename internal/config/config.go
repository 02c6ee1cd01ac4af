// Package config loads server settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration
type Config struct {
	HTTP        HTTPConfig        `envPrefix:"HTTP_"`
	Log         LogConfig         `envPrefix:"LOG_"`
	QuestionAPI QuestionAPIConfig `envPrefix:"QUESTION_API_"`
	Redis       RedisConfig       `envPrefix:"REDIS_"`

	// HubCleanupInterval is how often idle SSE hubs are reaped
	HubCleanupInterval time.Duration `env:"HUB_CLEANUP_INTERVAL" envDefault:"1m"`
}

// HTTPConfig holds listener settings
type HTTPConfig struct {
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// QuestionAPIConfig holds external question provider settings
type QuestionAPIConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	URL     string        `env:"URL" envDefault:"https://api.truthordarebot.xyz/v1"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// RedisConfig holds the optional Redis publisher settings. An empty URL
// disables it.
type RedisConfig struct {
	URL           string        `env:"URL"`
	ChannelPrefix string        `env:"CHANNEL_PREFIX" envDefault:"tdgame"`
	StateTTL      time.Duration `env:"STATE_TTL" envDefault:"24h"`
	ClosedTTL     time.Duration `env:"CLOSED_TTL" envDefault:"1m"`
}

// Load reads .env files (default ".env", missing files ignored) and then
// the environment. Variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	if c.QuestionAPI.Enabled && c.QuestionAPI.URL == "" {
		return errors.New("QUESTION_API_URL is required when the question API is enabled")
	}
	if c.QuestionAPI.Timeout <= 0 {
		return fmt.Errorf("QUESTION_API_TIMEOUT must be positive, got %s", c.QuestionAPI.Timeout)
	}
	if c.HubCleanupInterval <= 0 {
		return fmt.Errorf("HUB_CLEANUP_INTERVAL must be positive, got %s", c.HubCleanupInterval)
	}
	return nil
}

// SlogLevel parses the configured level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", l.Level, err)
	}
	return level, nil
}
