// Package config loads all runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram settings
	TelegramToken string
	ChannelID     string

	// Gemini settings
	GeminiAPIKey     string
	GeminiModel      string
	MaxOracleCalls   int           // maximum oracle requests per run (0 = unlimited)
	OracleCallDelay  time.Duration // fixed pause after every oracle call
	OracleCacheTTL   time.Duration // memo TTL for identical oracle requests
	RecentTitleLimit int           // how many recent titles feed the duplicate check

	// Feed settings
	FeedsConfigPath string
	TimeWindow      time.Duration // only entries newer than now-TimeWindow are considered

	// History settings
	HistoryFilePath string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:  "configs/feeds.yaml",
		GeminiModel:      "gemini-2.5-flash-lite",
		OracleCallDelay:  5 * time.Second,
		OracleCacheTTL:   1 * time.Hour,
		RecentTitleLimit: 200,
		TimeWindow:       150 * time.Minute,
		HistoryFilePath:  "history.txt",
		RequestTimeout:   30 * time.Second,
		RetryAttempts:    3,
		RetryDelay:       5 * time.Second,
	}

	// Load from environment
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.ChannelID = os.Getenv("CHANNEL_ID")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.HistoryFilePath = getEnvOrDefault("HISTORY_FILE_PATH", cfg.HistoryFilePath)

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	if v := getEnvIntOrDefault("TIME_WINDOW_MINUTES", 150); v > 0 {
		cfg.TimeWindow = time.Duration(v) * time.Minute
	}
	if v := getEnvIntOrDefault("ORACLE_DELAY_SECONDS", 5); v >= 0 {
		cfg.OracleCallDelay = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RECENT_TITLES_LIMIT", 200); v > 0 {
		cfg.RecentTitleLimit = v
	}
	if v := getEnvIntOrDefault("MAX_ORACLE_CALLS", 0); v > 0 {
		cfg.MaxOracleCalls = v
	}
	if v := getEnvIntOrDefault("ORACLE_CACHE_TTL_MINUTES", 60); v > 0 {
		cfg.OracleCacheTTL = time.Duration(v) * time.Minute
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("CHANNEL_ID is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}
