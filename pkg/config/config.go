// Package config loads picset configuration from a TOML file.
//
// The file configures the serve command, the cache backend, and any extra
// usage contexts beyond the built-in tile and narrow tables:
//
//	[server]
//	addr = ":8461"
//
//	[cache]
//	backend = "redis"   # file | redis | mongo | none
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[contexts.billboard]
//	widths = [320, 480, 640, 960, 1280, 1920]
//
// Context widths are indexed along the canonical size-key order (lowMin
// first, highMax last) and must be positive and strictly increasing; Load
// rejects tables that are not.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mlorenz/picset/pkg/errors"
	"github.com/mlorenz/picset/pkg/srcset"
)

// Cache backend names accepted in [cache].backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig             `toml:"server"`
	Cache    CacheConfig              `toml:"cache"`
	Contexts map[string]ContextConfig `toml:"contexts"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"` // file backend; empty uses the XDG default
	TTL     string      `toml:"ttl"` // Go duration string; empty means no expiry
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ContextConfig declares one extra usage context. Widths follow the
// canonical size-key order.
type ContextConfig struct {
	Widths [6]int `toml:"widths"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8461"},
		Cache:  CacheConfig{Backend: BackendFile, TTL: "24h"},
	}
}

// Load reads and validates the TOML file at path. A missing file yields the
// defaults; a malformed or invalid one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterContexts installs the configured extra usage contexts into the
// srcset breakpoint registry. Call once at startup.
func (c *Config) RegisterContexts() error {
	for name, ctx := range c.Contexts {
		if err := srcset.RegisterContext(name, ctx.Widths); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "context %q", name)
		}
	}
	return nil
}

// CacheTTL parses the configured TTL. Empty means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache ttl %q", c.Cache.TTL)
	}
	return ttl, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	// Context tables are validated eagerly so a bad config fails at load,
	// not at first derivation.
	for name, ctx := range c.Contexts {
		prev := 0
		for _, w := range ctx.Widths {
			if w <= prev {
				return errors.New(errors.ErrCodeInvalidConfig,
					"context %q: widths must be positive and strictly increasing", name)
			}
			prev = w
		}
	}
	return nil
}
