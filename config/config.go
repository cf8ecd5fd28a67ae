package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// CatalogConfig holds the catalog browsing and reservation policy knobs.
type CatalogConfig struct {
	TeaserPageSize int `yaml:"teaser_page_size"`
	PageSize       int `yaml:"page_size"`

	// Price bucket boundaries, in monthly BRL. A space is "low" when
	// price <= PriceLowMax, "medium" when PriceLowMax < price <= PriceHighMin,
	// "high" above that.
	PriceLowMax  float64 `yaml:"price_low_max"`
	PriceHighMin float64 `yaml:"price_high_min"`

	MinLeaseDays int `yaml:"min_lease_days"`

	// FakeLatencyMS adds a fixed delay to every in-memory DataSource call,
	// mimicking network latency during front-end development. Zero disables it.
	FakeLatencyMS int `yaml:"fake_latency_ms"`
}

// FakeLatency returns the configured in-memory latency as a duration.
func (c CatalogConfig) FakeLatency() time.Duration {
	return time.Duration(c.FakeLatencyMS) * time.Millisecond
}

// DatabaseConfig holds the database connection configuration. Driver
// "memory" skips the database entirely and serves the seeded in-memory
// data source.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite", "postgres" or "memory"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	Seed                   bool   `yaml:"seed"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied. It is used when
// no config file is present (development / in-memory mode) and by tests.
func Default() *Config {
	cfg := &Config{}
	cfg.Database.Seed = true
	// applyDefaults only errors on invalid explicit values.
	_ = cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}

	if cfg.Catalog.TeaserPageSize <= 0 {
		cfg.Catalog.TeaserPageSize = 6
	}
	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = 50
	}
	if cfg.Catalog.PriceLowMax <= 0 {
		cfg.Catalog.PriceLowMax = 1000
	}
	if cfg.Catalog.PriceHighMin <= 0 {
		cfg.Catalog.PriceHighMin = 3000
	}
	if cfg.Catalog.PriceHighMin < cfg.Catalog.PriceLowMax {
		return fmt.Errorf("price_high_min (%v) must not be below price_low_max (%v)",
			cfg.Catalog.PriceHighMin, cfg.Catalog.PriceLowMax)
	}
	if cfg.Catalog.MinLeaseDays <= 0 {
		cfg.Catalog.MinLeaseDays = 30
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}
	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
	return nil
}
