// Package config loads dispatch dashboard settings from layered sources.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the resolved dashboard configuration.
type Config struct {
	API         APIConfig         `koanf:"api"`
	Server      ServerConfig      `koanf:"server"`
	Preferences PreferencesConfig `koanf:"preferences"`
	Log         LogConfig         `koanf:"log"`
	Views       ViewsConfig       `koanf:"views"`
	Charts      ChartsConfig      `koanf:"charts"`
}

// APIConfig points the gateway at the dispatch backend.
type APIConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Key          string        `koanf:"key"`
	Timeout      time.Duration `koanf:"timeout"`
	StrictShapes bool          `koanf:"strict_shapes"`
	Demo         bool          `koanf:"demo"`
}

// ServerConfig configures the web host.
type ServerConfig struct {
	Addr     string `koanf:"addr"`
	BasePath string `koanf:"base_path"`
}

// PreferencesConfig selects the preference backend.
type PreferencesConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ViewsConfig holds per-view fetch limits.
type ViewsConfig struct {
	OrdersLimit    int `koanf:"orders_limit"`
	ShipmentsLimit int `koanf:"shipments_limit"`
}

// ChartsConfig controls server-side chart rendering.
type ChartsConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Defaults returns the flat default key set.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":          "http://localhost:8000/api",
		"api.key":               "",
		"api.timeout":           "0s",
		"api.strict_shapes":     false,
		"api.demo":              false,
		"server.addr":           ":8080",
		"server.base_path":      "",
		"preferences.backend":   "memory",
		"preferences.path":      "",
		"log.level":             "info",
		"log.format":            "text",
		"views.orders_limit":    60,
		"views.shipments_limit": 50,
		"charts.cache_ttl":      "5m",
	}
}

// Validate checks values the loaders cannot type-check.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" && !c.API.Demo {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative")
	}
	if c.Views.OrdersLimit <= 0 {
		return fmt.Errorf("config: views.orders_limit must be positive, got %d", c.Views.OrdersLimit)
	}
	if c.Views.ShipmentsLimit <= 0 {
		return fmt.Errorf("config: views.shipments_limit must be positive, got %d", c.Views.ShipmentsLimit)
	}
	switch strings.ToLower(c.Preferences.Backend) {
	case "memory":
	case "file", "sqlite":
		if c.Preferences.Path == "" {
			return fmt.Errorf("config: preferences.path is required for the %s backend", c.Preferences.Backend)
		}
	default:
		return fmt.Errorf("config: unknown preferences.backend %q", c.Preferences.Backend)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
}
