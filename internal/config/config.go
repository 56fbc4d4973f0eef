package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/moviedeck/moviedeck/internal/core"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// Frontends
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration
type TMDbConfig struct {
	APIKey string `yaml:"api_key"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel    string `yaml:"log_level"`    // "debug", "info", "warn", "error"
	DefaultList string `yaml:"default_list"` // list shown when browse is run bare
}

// Load loads configuration from a YAML file with environment variable overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MOVIEDECK_TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}

	if c.Telegram != nil {
		if v := os.Getenv("MOVIEDECK_TELEGRAM_BOT_TOKEN"); v != "" {
			c.Telegram.BotToken = v
		}
	}

	if v := os.Getenv("MOVIEDECK_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("MOVIEDECK_DEFAULT_LIST"); v != "" {
		c.App.DefaultList = v
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.TMDb.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required")
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram is configured")
	}

	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.DefaultList == "" {
		c.App.DefaultList = string(core.ListPopular)
	}
	if _, ok := core.ParseListType(c.App.DefaultList); !ok {
		return fmt.Errorf("app.default_list %q is not a known list type", c.App.DefaultList)
	}

	return nil
}
