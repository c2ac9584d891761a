package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration, only required by the bot front end
	BotToken string

	// Storage configuration
	DataDir string

	// Catalog configuration
	CatalogSource  string
	CatalogTimeout time.Duration

	// Application configuration
	LogLevel     string
	SuggestLimit int
	SessionTTL   time.Duration
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Global.Debug("No .env file loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		BotToken:       v.GetString("bot_token"),
		DataDir:        v.GetString("data_dir"),
		CatalogSource:  v.GetString("catalog_source"),
		CatalogTimeout: v.GetDuration("catalog_timeout"),
		LogLevel:       v.GetString("log_level"),
		SuggestLimit:   v.GetInt("suggest_limit"),
		SessionTTL:     v.GetDuration("session_ttl"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	logger.Global.Info("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// RequireBotToken returns an error when the Telegram token is missing
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("catalog_source", "recipes.json")
	v.SetDefault("catalog_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("suggest_limit", 6)
	v.SetDefault("session_ttl", "30m")
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.CatalogSource == "" {
		return fmt.Errorf("CATALOG_SOURCE must not be empty")
	}
	if c.SuggestLimit <= 0 {
		return fmt.Errorf("SUGGEST_LIMIT must be positive, got %d", c.SuggestLimit)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
