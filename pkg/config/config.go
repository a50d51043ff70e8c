package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"idxsignal/pkg/util"
)

// Duration wraps time.Duration so YAML values like "30s" decode directly.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = v
	return nil
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	MarketData struct {
		BaseURL      string   `yaml:"base_url"`
		Timeout      Duration `yaml:"timeout"`
		FetchTimeout Duration `yaml:"fetch_timeout"`
	} `yaml:"market_data"`
	Cache struct {
		Backend string   `yaml:"backend"` // memory or redis
		TTL     Duration `yaml:"ttl"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Benchmark struct {
		Ticker string `yaml:"ticker"`
		Days   int    `yaml:"days"`
	} `yaml:"benchmark"`
	Screener struct {
		UniverseFile string `yaml:"universe_file"`
		Concurrency  int    `yaml:"concurrency"`
	} `yaml:"screener"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if port := util.ParseIntDefault(os.Getenv("PORT"), 0); port > 0 {
		c.Server.Port = port
	}
	if v := os.Getenv("MARKET_DATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("UNIVERSE_FILE"); v != "" {
		c.Screener.UniverseFile = v
	}
	if v := os.Getenv("BENCHMARK_TICKER"); v != "" {
		c.Benchmark.Ticker = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 10 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.MarketData.Timeout.Duration == 0 {
		c.MarketData.Timeout.Duration = 10 * time.Second
	}
	if c.MarketData.FetchTimeout.Duration == 0 {
		c.MarketData.FetchTimeout.Duration = 10 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 600 * time.Second
	}
	if c.Benchmark.Ticker == "" {
		c.Benchmark.Ticker = "^JKSE"
	}
	if c.Benchmark.Days == 0 {
		c.Benchmark.Days = 260
	}
	if c.Screener.Concurrency == 0 {
		c.Screener.Concurrency = 8
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for the redis backend")
	}
	if c.Screener.UniverseFile == "" {
		return fmt.Errorf("screener.universe_file is required")
	}
	if c.Screener.Concurrency < 0 {
		return fmt.Errorf("screener.concurrency must be positive")
	}
	return nil
}
