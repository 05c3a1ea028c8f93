package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	BackendMemory    = "memory"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendComposite = "composite"
)

type Config struct {
	App struct {
		PageSize int    `toml:"page_size"`
		LogLevel string `toml:"log_level"`
	} `toml:"app"`

	Feed struct {
		WsURL          string `toml:"ws_url"`
		Request        string `toml:"request"`
		DialTimeoutSec int    `toml:"dial_timeout_sec"` // 0: default 10s, <0: no bound
	} `toml:"feed"`

	Storage struct {
		Backend string `toml:"backend"`

		SQLite struct {
			Path string `toml:"path"`
		} `toml:"sqlite"`

		Redis struct {
			Addr       string `toml:"addr"`
			Password   string `toml:"password"`
			DB         int    `toml:"db"`
			Prefix     string `toml:"prefix"`
			TTLSeconds int    `toml:"ttl_seconds"`
		} `toml:"redis"`

		Postgres struct {
			DSN string `toml:"dsn"`
		} `toml:"postgres"`

		Composite struct {
			Backends []string `toml:"backends"`
		} `toml:"composite"`
	} `toml:"storage"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// DialTimeout returns the handshake bound; zero means unbounded.
func (c *Config) DialTimeout() time.Duration {
	if c.Feed.DialTimeoutSec < 0 {
		return 0
	}
	return time.Duration(c.Feed.DialTimeoutSec) * time.Second
}

func applyDefaults(cfg *Config) {
	if cfg.App.PageSize <= 0 {
		cfg.App.PageSize = 10
	}
	if strings.TrimSpace(cfg.App.LogLevel) == "" {
		cfg.App.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.Feed.Request) == "" {
		cfg.Feed.Request = "prices"
	}
	if cfg.Feed.DialTimeoutSec == 0 {
		cfg.Feed.DialTimeoutSec = 10
	}
	if strings.TrimSpace(cfg.Storage.Backend) == "" {
		cfg.Storage.Backend = BackendSQLite
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = "data/fxwatch.db"
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "fxwatch"
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Feed.WsURL) == "" {
		return errors.New("feed.ws_url is empty")
	}
	switch cfg.Storage.Backend {
	case BackendComposite:
		cfg.Storage.Composite.Backends = normalizeBackends(cfg.Storage.Composite.Backends)
		if len(cfg.Storage.Composite.Backends) == 0 {
			return errors.New("storage.composite.backends is empty")
		}
		for _, b := range cfg.Storage.Composite.Backends {
			if b == BackendComposite {
				return errors.New("storage.composite.backends cannot contain composite")
			}
			if err := validateBackend(cfg, b); err != nil {
				return err
			}
		}
		return nil
	default:
		return validateBackend(cfg, cfg.Storage.Backend)
	}
}

func validateBackend(cfg *Config, backend string) error {
	switch backend {
	case BackendMemory, BackendSQLite:
		return nil
	case BackendRedis:
		if strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
			return errors.New("storage.redis.addr empty but redis backend selected")
		}
		return nil
	case BackendPostgres:
		if strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
			return errors.New("storage.postgres.dsn empty but postgres backend selected")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", backend)
	}
}

func normalizeBackends(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		b := strings.ToLower(strings.TrimSpace(s))
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
