package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all tunables for the toolkit. Per-run inputs (seed
// URL, keywords, output paths) come from the CLI instead.
type Config struct {
	UserAgent     string `mapstructure:"USER_AGENT"`
	HTTPTimeout   int    `mapstructure:"HTTP_TIMEOUT"` // seconds
	MaxBodyKB     int    `mapstructure:"MAX_BODY_KB"`
	CrawlDelayMS  int    `mapstructure:"CRAWL_DELAY_MS"`
	CrawlMaxPages int    `mapstructure:"CRAWL_MAX_PAGES"`
	SearchDelay   int    `mapstructure:"SEARCH_DELAY"` // seconds between searches
	SearchResults int    `mapstructure:"SEARCH_RESULTS"`
	Language      string `mapstructure:"SEARCH_LANGUAGE"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	// Comma-separated lists.
	SearchUserAgents string `mapstructure:"SEARCH_USER_AGENTS"`
	ProxyURLs        string `mapstructure:"PROXY_URLS"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	_ = viper.ReadInConfig()

	viper.SetDefault("USER_AGENT", "seotools-bot/1.0")
	viper.SetDefault("HTTP_TIMEOUT", 10)
	viper.SetDefault("MAX_BODY_KB", 5120)
	viper.SetDefault("CRAWL_DELAY_MS", 500)
	viper.SetDefault("CRAWL_MAX_PAGES", 100)
	viper.SetDefault("SEARCH_DELAY", 5)
	viper.SetDefault("SEARCH_RESULTS", 10)
	viper.SetDefault("SEARCH_LANGUAGE", "en")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SEARCH_USER_AGENTS", "")
	viper.SetDefault("PROXY_URLS", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// CrawlDelay returns the polite delay between crawl fetches.
func (c *Config) CrawlDelay() time.Duration {
	return time.Duration(c.CrawlDelayMS) * time.Millisecond
}

// SearchDelayDuration returns the delay between search requests.
func (c *Config) SearchDelayDuration() time.Duration {
	return time.Duration(c.SearchDelay) * time.Second
}

// UserAgents splits the configured search user-agent list.
func (c *Config) UserAgents() []string {
	return splitList(c.SearchUserAgents)
}

// Proxies splits the configured proxy list.
func (c *Config) Proxies() []string {
	return splitList(c.ProxyURLs)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
