// Package config loads the tba command configuration from a YAML file and
// TBA_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	tba "github.com/frc1418/go-tba"
)

// EnvPrefix is prepended to every environment override, as in TBA_AUTH_KEY
// or TBA_CACHE_TTL.
const EnvPrefix = "TBA"

// Config represents the complete configuration structure
type Config struct {
	AuthKey    string        `mapstructure:"auth_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  int           `mapstructure:"rate_limit"`
	MaxRetries int           `mapstructure:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent"`

	Trusted TrustedConfig `mapstructure:"trusted"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TrustedConfig holds the write credentials for one event
type TrustedConfig struct {
	AuthID     string `mapstructure:"auth_id"`
	AuthSecret string `mapstructure:"auth_secret"`
	EventKey   string `mapstructure:"event_key"`
}

// CacheConfig controls the in-memory response cache
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ErrInvalid marks configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Load reads configPath, or config.yaml from the standard locations when
// configPath is empty. A missing file is only an error when configPath was
// given; environment variables alone are a complete configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults are only seen by Unmarshal once bound.
	for _, key := range []string{"auth_key", "user_agent", "trusted.auth_id", "trusted.auth_secret", "trusted.event_key"} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tba"))
		}
		v.AddConfigPath("/etc/tba/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", tba.DefaultBaseURL)
	v.SetDefault("timeout", tba.DefaultTimeout)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("max_retries", 0)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", tba.DefaultCacheSize)
	v.SetDefault("cache.ttl", time.Duration(0))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.AuthKey == "" || cfg.AuthKey == "your-read-key" {
		return errors.Wrap(ErrInvalid, "auth_key must be set to a valid read API key")
	}

	if cfg.Timeout < 0 {
		return errors.Wrapf(ErrInvalid, "timeout must not be negative, got %s", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return errors.Wrapf(ErrInvalid, "rate_limit must not be negative, got %d", cfg.RateLimit)
	}
	if cfg.MaxRetries < 0 {
		return errors.Wrapf(ErrInvalid, "max_retries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.Cache.Size <= 0 {
		return errors.Wrapf(ErrInvalid, "cache.size must be positive, got %d", cfg.Cache.Size)
	}

	// A partial trusted section would only fail later, at the first write.
	if cfg.Trusted.AuthID != "" && cfg.Trusted.AuthSecret == "" {
		return errors.Wrap(ErrInvalid, "trusted.auth_secret is required with trusted.auth_id")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return errors.Wrapf(ErrInvalid, "invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return errors.Wrapf(ErrInvalid, "invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ClientConfig converts cfg into the library client configuration.
func (c *Config) ClientConfig() *tba.ClientConfig {
	return &tba.ClientConfig{
		AuthKey:            c.AuthKey,
		AuthID:             c.Trusted.AuthID,
		AuthSecret:         c.Trusted.AuthSecret,
		EventKey:           c.Trusted.EventKey,
		BaseURL:            c.BaseURL,
		Timeout:            c.Timeout,
		RateLimitPerMinute: c.RateLimit,
		MaxRetries:         c.MaxRetries,
		CacheSize:          c.Cache.Size,
		CacheTTL:           c.Cache.TTL,
		DisableCache:       !c.Cache.Enabled,
		UserAgent:          c.UserAgent,
	}
}
