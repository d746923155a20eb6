package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSecret placeholder accepted only outside production
const DefaultSecret = "your-secret-key-change-in-production"

// Config application configuration
type Config struct {
	Env            string        `mapstructure:"app_env"`
	AppSecret      string        `mapstructure:"app_secret"`
	Port           string        `mapstructure:"port"`
	SiteName       string        `mapstructure:"site_name"`
	SiteUrl        string        `mapstructure:"site_url"`
	BackendURL     string        `mapstructure:"backend_url"`
	BackendTimeout time.Duration `mapstructure:"backend_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`

	ProxyImages    bool          `mapstructure:"proxy_images"`
	ImageCacheSize int           `mapstructure:"image_cache_size"`
	ImageCacheTTL  time.Duration `mapstructure:"image_cache_ttl"`

	RateLimitEnabled bool    `mapstructure:"rate_limit_enabled"`
	RateLimitRPS     float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst   int     `mapstructure:"rate_limit_burst"`
}

// IsProduction app_env is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads defaults, then the optional YAML file at path, then the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults every key needs a default for AutomaticEnv to see it
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("app_secret", DefaultSecret)
	v.SetDefault("port", "5005")
	v.SetDefault("site_name", "Movie Catalog")
	v.SetDefault("site_url", "http://localhost:5005")
	v.SetDefault("backend_url", "http://localhost:5000")
	v.SetDefault("backend_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("proxy_images", false)
	v.SetDefault("image_cache_size", 256)
	v.SetDefault("image_cache_ttl", time.Hour)

	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_rps", 2.0)
	v.SetDefault("rate_limit_burst", 4)
}

// Validate checks the configuration for values the process cannot run with
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("backend_url must be an http(s) URL: %s", c.BackendURL)
	}

	if c.BackendTimeout <= 0 {
		return fmt.Errorf("backend_timeout must be positive")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}

	if c.IsProduction() && (c.AppSecret == "" || c.AppSecret == DefaultSecret) {
		return fmt.Errorf("app_secret must be set in production")
	}

	if c.RateLimitEnabled && (c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0) {
		return fmt.Errorf("rate_limit_rps and rate_limit_burst must be positive")
	}

	if c.ProxyImages && (c.ImageCacheSize <= 0 || c.ImageCacheTTL <= 0) {
		return fmt.Errorf("image_cache_size and image_cache_ttl must be positive")
	}

	return nil
}
