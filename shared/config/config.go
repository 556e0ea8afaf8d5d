package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envFile = ".env"

const (
	defaultPort             = 8080
	defaultLogLevel         = "info"
	defaultFeedPageSize     = 10
	defaultSummaryCacheSize = 1024
)

// Config holds the server settings read from the environment.
// The database path is read separately by sqlite.NewSQLiteConfig.
type Config struct {
	Port             int
	LogLevel         string
	LogFormat        string
	FeedPageSize     int
	SummaryCacheSize int
}

// Load reads .env, if present, into the process environment and then builds a Config.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying defaults for unset ones.
func FromEnv() (*Config, error) {
	port, err := intEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	pageSize, err := intEnv("FEED_PAGE_SIZE", defaultFeedPageSize)
	if err != nil {
		return nil, err
	}

	cacheSize, err := intEnv("SUMMARY_CACHE_SIZE", defaultSummaryCacheSize)
	if err != nil {
		return nil, err
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = defaultLogLevel
	}

	return &Config{
		Port:             port,
		LogLevel:         level,
		LogFormat:        os.Getenv("LOG_FORMAT"),
		FeedPageSize:     pageSize,
		SummaryCacheSize: cacheSize,
	}, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}

	return v, nil
}
