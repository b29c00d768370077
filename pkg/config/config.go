package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Dukascopy struct {
		QuotesURL    string        `yaml:"quotes_url"`
		CalendarURL  string        `yaml:"calendar_url"`
		PollInterval time.Duration `yaml:"poll_interval"`
		WindowDays   int           `yaml:"window_days"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"dukascopy"`
	Gemini struct {
		APIKey     string        `yaml:"api_key"`
		Endpoint   string        `yaml:"endpoint"`
		Model      string        `yaml:"model"`
		MaxRetries int           `yaml:"max_retries"`
		BaseDelay  time.Duration `yaml:"base_delay"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"gemini"`
	Analysis struct {
		Cycle      time.Duration `yaml:"cycle"`
		Sweep      time.Duration `yaml:"sweep"`
		BufferSize int           `yaml:"buffer_size"`
		MaxRPS     int           `yaml:"max_rps"`
	} `yaml:"analysis"`
	Cache struct {
		ProxyTTL  time.Duration `yaml:"proxy_ttl"`
		SignalTTL time.Duration `yaml:"signal_ttl"`
		Redis     struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
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

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Dukascopy.PollInterval <= 0 {
		c.Dukascopy.PollInterval = time.Second
	}
	if c.Dukascopy.WindowDays <= 0 {
		c.Dukascopy.WindowDays = 7
	}
	if c.Dukascopy.Timeout <= 0 {
		c.Dukascopy.Timeout = 10 * time.Second
	}
	if c.Gemini.MaxRetries <= 0 {
		c.Gemini.MaxRetries = 3
	}
	if c.Gemini.BaseDelay <= 0 {
		c.Gemini.BaseDelay = time.Second
	}
	if c.Gemini.Timeout <= 0 {
		c.Gemini.Timeout = 30 * time.Second
	}
	if c.Analysis.Cycle <= 0 {
		c.Analysis.Cycle = 5 * time.Minute
	}
	if c.Analysis.Sweep <= 0 {
		c.Analysis.Sweep = time.Minute
	}
	if c.Analysis.BufferSize <= 0 {
		c.Analysis.BufferSize = 256
	}
	if c.Analysis.MaxRPS <= 0 {
		c.Analysis.MaxRPS = 2
	}
	if c.Cache.ProxyTTL <= 0 {
		c.Cache.ProxyTTL = time.Second
	}
	if c.Cache.SignalTTL <= 0 {
		c.Cache.SignalTTL = 5 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Dukascopy.QuotesURL == "" {
		return fmt.Errorf("dukascopy.quotes_url is required")
	}
	if c.Dukascopy.CalendarURL == "" {
		return fmt.Errorf("dukascopy.calendar_url is required")
	}
	if c.Gemini.Endpoint == "" && c.Gemini.APIKey != "" {
		return fmt.Errorf("gemini.endpoint is required when an api key is set")
	}
	return nil
}

// AIEnabled reports whether the Gemini analyzer is configured.
func (c *Config) AIEnabled() bool {
	return c.Gemini.APIKey != "" && c.Gemini.Endpoint != ""
}
