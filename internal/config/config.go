// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token           string `yaml:"token"`
	Username        string `yaml:"username"`
	ChannelID       string `yaml:"channel_id"`       // numeric id ("-100...") or "@channelname"
	ChannelUsername string `yaml:"channel_username"` // optional, for the Join Channel button
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// WebhookToken is the shared secret presented by the chat widget.
	// Empty disables secret verification (test/bypass mode).
	WebhookToken string `yaml:"webhook_token"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace|debug|info|warn|error
	Format string `yaml:"format"` // json|console
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Bot    BotConfig    `yaml:"bot"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Redis  RedisConfig  `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// validates eagerly. A missing file is fine when the environment supplies
// everything (the usual deployment mode).
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required (BOT_TOKEN)")
	}
	if cfg.Bot.Username == "" {
		return nil, errors.New("bot.username is required (BOT_USERNAME)")
	}
	if cfg.Bot.ChannelID == "" {
		return nil, errors.New("bot.channel_id is required (CHANNEL_ID)")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required (REDIS_URL)")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// applyEnv lets the environment win over the file, using the variable names
// the hosted deployment already ships with.
func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&cfg.Bot.Token, "BOT_TOKEN")
	setStr(&cfg.Bot.Username, "BOT_USERNAME")
	setStr(&cfg.Bot.ChannelID, "CHANNEL_ID")
	setStr(&cfg.Bot.ChannelUsername, "CHANNEL_USERNAME")
	setStr(&cfg.Server.WebhookToken, "LIVECHAT_WEBHOOK_TOKEN")
	setStr(&cfg.Redis.URL, "REDIS_URL")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.Log.Format, "LOG_FORMAT")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
}
