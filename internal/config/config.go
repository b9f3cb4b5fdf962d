package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	ListenAddr  string `mapstructure:"LISTEN_ADDR"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogFormat   string `mapstructure:"LOG_FORMAT"`

	CatalogURL    string        `mapstructure:"CATALOG_URL"`
	StorefrontURL string        `mapstructure:"STOREFRONT_URL"`
	UploadURL     string        `mapstructure:"UPLOAD_URL"`
	UploadToken   string        `mapstructure:"UPLOAD_TOKEN"`
	UploadDir     string        `mapstructure:"UPLOAD_DIR"`
	PublicURL     string        `mapstructure:"PUBLIC_URL"`
	HTTPTimeout   time.Duration `mapstructure:"HTTP_TIMEOUT"`

	// Subset of the upstream page processed by a populate run.
	// A zero limit selects everything from the offset on.
	PopulateOffset      int `mapstructure:"POPULATE_OFFSET"`
	PopulateLimit       int `mapstructure:"POPULATE_LIMIT"`
	PopulateConcurrency int `mapstructure:"POPULATE_CONCURRENCY"`

	ScreenshotFormat string `mapstructure:"SCREENSHOT_FORMAT"`
	MaxScreenshots   int    `mapstructure:"MAX_SCREENSHOTS"`
}

var defaults = map[string]any{
	"DATABASE_URL":         "",
	"JWT_SECRET":           "",
	"LISTEN_ADDR":          ":8080",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "text",
	"CATALOG_URL":          "https://catalog.gog.com/v1/catalog",
	"STOREFRONT_URL":       "https://www.gog.com",
	"UPLOAD_URL":           "http://localhost:8080/api/v1/upload",
	"UPLOAD_TOKEN":         "",
	"UPLOAD_DIR":           "./uploads",
	"PUBLIC_URL":           "http://localhost:8080",
	"HTTP_TIMEOUT":         "30s",
	"POPULATE_OFFSET":      0,
	"POPULATE_LIMIT":       0,
	"POPULATE_CONCURRENCY": 0,
	"SCREENSHOT_FORMAT":    "ggvgm_2x",
	"MAX_SCREENSHOTS":      5,
}

// LoadConfig loads the configuration from a .env file in dir and environment variables.
// Environment variables take precedence over the file.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Debug(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.PopulateOffset < 0 {
		return fmt.Errorf("POPULATE_OFFSET must not be negative, got %d", c.PopulateOffset)
	}
	if c.PopulateLimit < 0 {
		return fmt.Errorf("POPULATE_LIMIT must not be negative, got %d", c.PopulateLimit)
	}
	if c.PopulateConcurrency < 0 {
		return fmt.Errorf("POPULATE_CONCURRENCY must not be negative, got %d", c.PopulateConcurrency)
	}
	if c.MaxScreenshots < 0 {
		return fmt.Errorf("MAX_SCREENSHOTS must not be negative, got %d", c.MaxScreenshots)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
