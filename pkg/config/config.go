// Package config holds runtime configuration for rulehub. Values come
// from .rulehub.yaml, RULEHUB_* env vars, and CLI flags, in that order of
// increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a rulehub session.
type Config struct {
	DataDir    string        `mapstructure:"data_dir"`
	Program    string        `mapstructure:"program"`
	Season     string        `mapstructure:"season"`
	LinkDomain string        `mapstructure:"link_domain"`
	ManualURL  string        `mapstructure:"manual_url"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	Width      int           `mapstructure:"width"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("data_dir", defaultDataDir())
	viper.SetDefault("program", "V5RC")
	viper.SetDefault("season", "2025-2026")
	viper.SetDefault("link_domain", "https://content.rulehub.dev")
	viper.SetDefault("manual_url", "")
	viper.SetDefault("cache_ttl", 24*time.Hour)
	viper.SetDefault("width", 100)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// LibraryDir returns the manual library path under the data directory.
func (c Config) LibraryDir() string {
	return filepath.Join(c.DataDir, "library")
}

// CacheDir returns the download cache path under the data directory.
func (c Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// NotesDB returns the favorites and notes database path.
func (c Config) NotesDB() string {
	return filepath.Join(c.DataDir, "rulehub.db")
}

// OrderingFile returns the group-ordering override file path.
func (c Config) OrderingFile() string {
	return filepath.Join(c.DataDir, "ordering.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rulehub"
	}
	return filepath.Join(home, ".rulehub")
}
