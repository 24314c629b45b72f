// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Session  SessionConfig  `yaml:"session"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type RealtimeConfig struct {
	URL           string   `yaml:"url"`
	ReconnectWait Duration `yaml:"reconnect_wait"`
}

type SessionConfig struct {
	UserID string `yaml:"user_id"`
}

type RefreshConfig struct {
	Interval Duration `yaml:"interval"`
}

// Duration понимает в yaml строки вида "15s", "5m"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("неверная длительность %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout == 0 {
		c.API.Timeout = Duration(15 * time.Second)
	}
	if c.Realtime.ReconnectWait == 0 {
		c.Realtime.ReconnectWait = Duration(2 * time.Second)
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = Duration(5 * time.Minute)
	}
}
