// File path: internal/sqlite/config.go
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Path string `json:"path"`

	MaxOpenConns int `json:"max_open_conns"`
	MaxIdleConns int `json:"max_idle_conns"`

	ConnMaxLifetime       time.Duration `json:"-"`
	ConnMaxLifetimeString string        `json:"conn_max_lifetime"`

	ConnMaxIdleTime       time.Duration `json:"-"`
	ConnMaxIdleTimeString string        `json:"conn_max_idle_time"`

	BusyTimeout       time.Duration `json:"-"`
	BusyTimeoutString string        `json:"busy_timeout"`
}

func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.Path) != "" {
		result.Path = strings.TrimSpace(override.Path)
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		result.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		result.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}

// LoadConfig resolves the store configuration from an optional JSON file
// (SQLITE_CONFIG_FILE) overlaid with individual environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("SQLITE_CONFIG_FILE")); path != "" {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	envCfg, err := loadConfigEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Merge(envCfg)
	cfg.applyDefaults()
	return cfg, nil
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read sqlite config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse sqlite config: %w", err)
	}
	if err := cfg.resolveDurations(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigEnv() (Config, error) {
	cfg := Config{Path: strings.TrimSpace(os.Getenv("SQLITE_PATH"))}
	var err error
	if cfg.MaxOpenConns, err = envInt("SQLITE_MAX_OPEN_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = envInt("SQLITE_MAX_IDLE_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.ConnMaxLifetime, err = envDuration("SQLITE_CONN_MAX_LIFETIME"); err != nil {
		return Config{}, err
	}
	if cfg.ConnMaxIdleTime, err = envDuration("SQLITE_CONN_MAX_IDLE_TIME"); err != nil {
		return Config{}, err
	}
	if cfg.BusyTimeout, err = envDuration("SQLITE_BUSY_TIMEOUT"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolveDurations() error {
	var err error
	if c.ConnMaxLifetime, err = parseDuration(c.ConnMaxLifetimeString, "conn_max_lifetime"); err != nil {
		return err
	}
	if c.ConnMaxIdleTime, err = parseDuration(c.ConnMaxIdleTimeString, "conn_max_idle_time"); err != nil {
		return err
	}
	if c.BusyTimeout, err = parseDuration(c.BusyTimeoutString, "busy_timeout"); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Path) == "" {
		c.Path = "data/outreach.db"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 30 * time.Minute
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
}

func parseDuration(value, field string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	return dur, nil
}

func envInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envDuration(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return dur, nil
}
