package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port                int    `env:"PORT" envDefault:"8080"`
	DatabaseURL         string `env:"DATABASE_URL,required"`
	RedisURL            string `env:"REDIS_URL,required"`
	LinkUpEmail         string `env:"LINKUP_EMAIL,required"`
	LinkUpPassword      string `env:"LINKUP_PASSWORD,required"`
	LinkUpSite          string `env:"LINKUP_SITE" envDefault:"https://api.libreview.io"`
	LinkUpRegion        string `env:"LINKUP_REGION" envDefault:""`
	ScrapeLogbook       bool   `env:"SCRAPE_LOGBOOK" envDefault:"true"`
	PollIntervalSeconds int    `env:"POLL_INTERVAL_SECONDS" envDefault:"60"`
	APIToken            string `env:"API_TOKEN"`
	LogLevel            string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SiteURL returns the LibreLinkUp base URL, switched to the regional host
// when LINKUP_REGION is set (e.g. "eu" -> https://api-eu.libreview.io).
func (c *Config) SiteURL() string {
	if c.LinkUpRegion == "" {
		return c.LinkUpSite
	}
	return fmt.Sprintf("https://api-%s.libreview.io", c.LinkUpRegion)
}

func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.LinkUpSite); err != nil {
		return fmt.Errorf("LINKUP_SITE is not a valid URL: %w", err)
	}
	if c.PollIntervalSeconds < MinPollIntervalSeconds {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be at least %d (the service samples every 5 minutes; polling harder risks a lockout)", MinPollIntervalSeconds)
	}
	if c.APIToken != "" && len(c.APIToken) < 32 {
		return fmt.Errorf("API_TOKEN must be at least 32 characters (generate with: openssl rand -hex 32)")
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
