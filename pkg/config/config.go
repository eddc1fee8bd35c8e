// Package config loads user settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/flowbasis/config.toml (falling back to
// ~/.config/flowbasis/config.toml). Keys that are absent keep their defaults,
// and a missing default file is not an error.
//
//	format = "table"
//	registry = "trie"
//	progress_every = 100000
//
//	[cache]
//	enabled = true
//	dir = ""
//	redis_url = ""
//	key_prefix = ""
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowbasis/pkg/basis"
	"github.com/matzehuels/flowbasis/pkg/cache"
	"github.com/matzehuels/flowbasis/pkg/errors"
	"github.com/matzehuels/flowbasis/pkg/report"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

const appName = "flowbasis"

// Config holds every user setting.
type Config struct {
	Format        string       `toml:"format"`
	Registry      string       `toml:"registry"`
	ProgressEvery int64        `toml:"progress_every"`
	Cache         CacheConfig  `toml:"cache"`
	Server        ServerConfig `toml:"server"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
	// RedisURL selects the Redis cache when non-empty.
	RedisURL string `toml:"redis_url"`
	// KeyPrefix namespaces cache keys, so several deployments can share one
	// Redis.
	KeyPrefix string   `toml:"key_prefix"`
	TTL       Duration `toml:"ttl"`
}

// ServerConfig configures `flowbasis serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("720h").
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:        report.FormatText,
		Registry:      trie.KindTrie,
		ProgressEvery: basis.DefaultProgressEvery,
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration(cache.TTLAnalysis),
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the config at path, or at [Path] when path is empty. A missing
// file at the default location yields [Default]; a missing explicit path is an
// error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := errors.ValidateFormat(c.Format, report.Formats...); err != nil {
		return err
	}
	if !slices.Contains([]string{trie.KindTrie, trie.KindLinear}, c.Registry) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown registry %q (want trie or linear)", c.Registry)
	}
	if c.ProgressEvery < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "progress_every must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	}
	return nil
}

// CacheDir returns the file cache directory: Cache.Dir if set, otherwise
// $XDG_CACHE_HOME/flowbasis (falling back to ~/.cache/flowbasis).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, appName), nil
}
