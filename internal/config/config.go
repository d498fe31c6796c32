package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Pricing struct {
		BaseHourlyRate float64 `yaml:"base_hourly_rate"`
		TiersPath      string  `yaml:"tiers_path"`
	} `yaml:"pricing"`

	Scheduling struct {
		BufferBeforeMinutes int `yaml:"buffer_before_minutes"`
		BufferAfterMinutes  int `yaml:"buffer_after_minutes"`
		MinLeadMinutes      int `yaml:"min_lead_minutes"`
		MinDurationMinutes  int `yaml:"min_duration_minutes"`
		MaxDurationMinutes  int `yaml:"max_duration_minutes"`
		SearchHorizonDays   int `yaml:"search_horizon_days"`
	} `yaml:"scheduling"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/pricegrid.db"
	}
	if cfg.Pricing.TiersPath == "" {
		cfg.Pricing.TiersPath = "configs/tiers.yaml"
	}

	return &cfg, nil
}

func (c *Config) BufferBefore() time.Duration {
	if c.Scheduling.BufferBeforeMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Scheduling.BufferBeforeMinutes) * time.Minute
}

func (c *Config) BufferAfter() time.Duration {
	if c.Scheduling.BufferAfterMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Scheduling.BufferAfterMinutes) * time.Minute
}

func (c *Config) MinLead() time.Duration {
	if c.Scheduling.MinLeadMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Scheduling.MinLeadMinutes) * time.Minute
}

func (c *Config) MinDuration() time.Duration {
	if c.Scheduling.MinDurationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Scheduling.MinDurationMinutes) * time.Minute
}

func (c *Config) MaxDuration() time.Duration {
	if c.Scheduling.MaxDurationMinutes <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.Scheduling.MaxDurationMinutes) * time.Minute
}

func (c *Config) SearchHorizon() int {
	if c.Scheduling.SearchHorizonDays <= 0 {
		return 30
	}
	return c.Scheduling.SearchHorizonDays
}

func (c *Config) BaseHourlyRate() float64 {
	if c.Pricing.BaseHourlyRate <= 0 {
		return 75
	}
	return c.Pricing.BaseHourlyRate
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

func (c *Config) RequestsPerSecond() float64 {
	if c.RateLimit.RequestsPerSecond <= 0 {
		return 20
	}
	return c.RateLimit.RequestsPerSecond
}

func (c *Config) RateLimitBurst() int {
	if c.RateLimit.Burst <= 0 {
		return 30
	}
	return c.RateLimit.Burst
}
