// Package config provides application configuration management backed by
// viper. Values come from defaults, an optional config.yaml, and
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/haberhub/scraper/internal/logger"
)

// Default configuration values.
const (
	DefaultServerAddress   = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultFetchDelay      = 500 * time.Millisecond
	DefaultRunTimeout      = 10 * time.Minute
	DefaultCronInterval    = 20 * time.Minute
	DefaultMaxLinksPerPage = 10
	DefaultUserAgent       = "haberhub-scraper/1.0"
)

// Config is the root application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Logger   logger.Config  `mapstructure:"logger"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ScraperConfig holds scrape-run settings.
type ScraperConfig struct {
	// RequestTimeout is the hard timeout per HTTP fetch.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// FetchDelay is the fixed inter-request delay per source.
	FetchDelay time.Duration `mapstructure:"fetch_delay"`
	// RunTimeout is the wall-clock budget for a whole run.
	RunTimeout time.Duration `mapstructure:"run_timeout"`
	// CronInterval is how often the scheduled run path fires.
	CronInterval time.Duration `mapstructure:"cron_interval"`
	// MaxLinksPerPage caps discovered article links per index.
	MaxLinksPerPage int `mapstructure:"max_links_per_page"`
	// UserAgent sent on outbound requests.
	UserAgent string `mapstructure:"user_agent"`
}

// Load reads configuration from viper into a Config. SetDefaults must
// have been applied to the viper instance beforehand.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Scraper.RequestTimeout <= 0 {
		return fmt.Errorf("scraper.request_timeout must be positive, got %s", c.Scraper.RequestTimeout)
	}
	if c.Scraper.MaxLinksPerPage <= 0 {
		return fmt.Errorf("scraper.max_links_per_page must be positive, got %d", c.Scraper.MaxLinksPerPage)
	}
	if c.Scraper.RunTimeout <= 0 {
		return fmt.Errorf("scraper.run_timeout must be positive, got %s", c.Scraper.RunTimeout)
	}
	return nil
}

// SetDefaults registers default values on the given viper instance and
// enables environment variable overrides (SCRAPER_DATABASE_HOST etc.).
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app", map[string]any{
		"name":        "haberhub-scraper",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	v.SetDefault("server", map[string]any{
		"address":       DefaultServerAddress,
		"read_timeout":  DefaultReadTimeout.String(),
		"write_timeout": DefaultWriteTimeout.String(),
		"idle_timeout":  DefaultIdleTimeout.String(),
	})

	v.SetDefault("database", map[string]any{
		"host":     "localhost",
		"port":     "5432",
		"user":     "postgres",
		"password": "",
		"dbname":   "haberhub",
		"sslmode":  "disable",
	})

	v.SetDefault("scraper", map[string]any{
		"request_timeout":    DefaultRequestTimeout.String(),
		"fetch_delay":        DefaultFetchDelay.String(),
		"run_timeout":        DefaultRunTimeout.String(),
		"cron_interval":      DefaultCronInterval.String(),
		"max_links_per_page": DefaultMaxLinksPerPage,
		"user_agent":         DefaultUserAgent,
	})
}
