package config

import (
	"fmt"
	"os"

	"github.com/NgigiN/aliorpl/internal/aliorpl"
)

const DefaultDBPath = "statements.db"

type Config struct {
	Charset string
	Account string
	Bank    string

	DBPath   string
	LogLevel string

	DiscordBotToken  string
	DiscordChannelId string
}

// Load reads the configuration from the environment. The account is not
// checked here since it may still come from a command line flag.
func Load() (*Config, error) {
	cfg := &Config{
		Charset:          getEnv("ALIORPL_CHARSET", aliorpl.DefaultCharset),
		Account:          os.Getenv("ALIORPL_ACCOUNT"),
		Bank:             getEnv("ALIORPL_BANK", aliorpl.DefaultBank),
		DBPath:           getEnv("ALIORPL_DB_PATH", DefaultDBPath),
		LogLevel:         getEnv("ALIORPL_LOG_LEVEL", "info"),
		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelId: os.Getenv("DISCORD_CHANNEL_ID"),
	}

	if cfg.DiscordBotToken != "" && cfg.DiscordChannelId == "" {
		return nil, fmt.Errorf("Channel ID is not set")
	}

	return cfg, nil
}

// ParserOptions returns the options for one conversion run.
func (c *Config) ParserOptions() aliorpl.Options {
	return aliorpl.Options{
		Charset: c.Charset,
		Account: c.Account,
		Bank:    c.Bank,
	}
}

// NotificationsEnabled reports whether a Discord channel is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.DiscordBotToken != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
