package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	applog "pubg-tracker/internal/logger"
)

type Config struct {
	APIKey     string
	Platform   string
	APIBaseURL string
	DBPath     string
	LogLevel   string
	MaxRetries int
}

// Load reads configuration from the environment. It runs before the leveled
// application logger exists, so it logs through a bootstrap logger of its
// own.
func Load() (*Config, error) {
	logger := applog.New()
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		APIKey:     getEnv("PUBG_API_KEY", ""),
		Platform:   getEnv("PUBG_PLATFORM", "steam"),
		APIBaseURL: getEnv("PUBG_API_BASE_URL", "https://api.pubg.com/shards"),
		DBPath:     getEnv("DB_PATH", "history.db"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		MaxRetries: getEnvInt("API_MAX_RETRIES", 3),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("PUBG_API_KEY is required")
	}
	if cfg.MaxRetries < 1 {
		logger.Warn().Int("max_retries", cfg.MaxRetries).Msg("API_MAX_RETRIES below 1, clamping to 1")
		cfg.MaxRetries = 1
	}

	logger.Info().
		Str("platform", cfg.Platform).
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Int("max_retries", cfg.MaxRetries).
		Msg("configuration loaded")

	return cfg, nil
}

// ShardURL is the platform-templated base URL all API requests go through.
func (c *Config) ShardURL() string {
	return fmt.Sprintf("%s/%s", c.APIBaseURL, c.Platform)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
