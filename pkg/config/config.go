package config

import (
	"fmt"
	"os"
	"strings"
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
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Artifacts struct {
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		Memory struct {
			MaxSize int `yaml:"max_size"`
		} `yaml:"memory"`
	} `yaml:"cache"`
	Pipeline struct {
		Source  string   `yaml:"source"`
		Symbols []string `yaml:"symbols"`
		News    struct {
			CSVPath string        `yaml:"csv_path"`
			BaseURL string        `yaml:"base_url"`
			APIKey  string        `yaml:"api_key"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"news"`
		Bars struct {
			CSVPath string        `yaml:"csv_path"`
			BaseURL string        `yaml:"base_url"`
			APIKey  string        `yaml:"api_key"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"bars"`
		TrainRatio float64 `yaml:"train_ratio"`
	} `yaml:"pipeline"`
	Model struct {
		Trees    int   `yaml:"trees"`
		MaxDepth int   `yaml:"max_depth"`
		Seed     int64 `yaml:"seed"`
		Workers  int   `yaml:"workers"`
	} `yaml:"model"`
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

	// Validate required fields
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

	// Override with environment variables
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Pipeline.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("PIPELINE_SOURCE"); v != "" {
		c.Pipeline.Source = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.Pipeline.News.APIKey = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		c.Pipeline.Bars.APIKey = v
	}
	if v := os.Getenv("ARTIFACTS_DIR"); v != "" {
		c.Artifacts.Dir = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Pipeline.Source != "csv" && c.Pipeline.Source != "http" {
		return fmt.Errorf("pipeline.source must be 'csv' or 'http', got '%s'", c.Pipeline.Source)
	}
	if len(c.Pipeline.Symbols) == 0 {
		return fmt.Errorf("pipeline.symbols cannot be empty")
	}
	if c.Pipeline.Source == "csv" {
		if c.Pipeline.News.CSVPath == "" || c.Pipeline.Bars.CSVPath == "" {
			return fmt.Errorf("pipeline.news.csv_path and pipeline.bars.csv_path are required for the csv source")
		}
	}
	if c.Pipeline.TrainRatio <= 0 || c.Pipeline.TrainRatio >= 1 {
		return fmt.Errorf("pipeline.train_ratio must be in (0, 1), got %v", c.Pipeline.TrainRatio)
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir is required")
	}
	if c.Model.Trees <= 0 {
		return fmt.Errorf("model.trees must be positive")
	}
	return nil
}
