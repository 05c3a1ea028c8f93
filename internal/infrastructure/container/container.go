package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"fxwatch/internal/application/port"
	"fxwatch/internal/infrastructure/config"
	"fxwatch/internal/infrastructure/storage"
	"fxwatch/internal/infrastructure/storage/composite"
	pgrepo "fxwatch/internal/infrastructure/storage/postgres"
	redisrepo "fxwatch/internal/infrastructure/storage/redis"
	sqliterepo "fxwatch/internal/infrastructure/storage/sqlite"
)

// Container 持有应用的存储依赖
type Container struct {
	cfg         *config.Config
	store       port.SnapshotStore
	closeOnce   sync.Once
	closerChain []func() error
}

// New 根据配置创建快照存储
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		cfg:         cfg,
		closerChain: make([]func() error, 0),
	}

	store, err := c.initStorage()
	if err != nil {
		// 清理已初始化的资源
		_ = c.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageInitFailed, err)
	}
	c.store = store
	return c, nil
}

func (c *Container) initStorage() (port.SnapshotStore, error) {
	if c.cfg.Storage.Backend != config.BackendComposite {
		return c.initBackend(c.cfg.Storage.Backend)
	}

	stores := make([]port.SnapshotStore, 0, len(c.cfg.Storage.Composite.Backends))
	for _, b := range c.cfg.Storage.Composite.Backends {
		s, err := c.initBackend(b)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	log.Info().Strs("backends", c.cfg.Storage.Composite.Backends).Msg("composite storage initialized")
	return composite.New(stores...), nil
}

func (c *Container) initBackend(backend string) (port.SnapshotStore, error) {
	switch backend {
	case config.BackendMemory:
		log.Info().Msg("memory storage initialized")
		return storage.NewInMemoryStore(), nil
	case config.BackendSQLite:
		return c.initSQLite()
	case config.BackendRedis:
		return c.initRedis()
	case config.BackendPostgres:
		return c.initPostgres()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func (c *Container) initRedis() (port.SnapshotStore, error) {
	rc := c.cfg.Storage.Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	repo := redisrepo.New(rdb, rc.Prefix, time.Duration(rc.TTLSeconds)*time.Second)
	c.closerChain = append(c.closerChain, func() error {
		log.Info().Msg("closing redis connection")
		return repo.Close()
	})

	log.Info().
		Str("addr", rc.Addr).
		Int("db", rc.DB).
		Msg("redis initialized")
	return repo, nil
}

func (c *Container) initSQLite() (port.SnapshotStore, error) {
	repo, err := sqliterepo.New(c.cfg.Storage.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite init failed: %w", err)
	}
	c.closerChain = append(c.closerChain, func() error {
		log.Info().Msg("closing sqlite connection")
		return repo.Close()
	})

	log.Info().
		Str("path", c.cfg.Storage.SQLite.Path).
		Msg("sqlite initialized")
	return repo, nil
}

func (c *Container) initPostgres() (port.SnapshotStore, error) {
	repo, err := pgrepo.New(c.cfg.Storage.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres init failed: %w", err)
	}
	c.closerChain = append(c.closerChain, func() error {
		log.Info().Msg("closing postgres connection")
		return repo.Close()
	})

	log.Info().Msg("postgres initialized")
	return repo, nil
}

// Config 获取配置
func (c *Container) Config() *config.Config {
	return c.cfg
}

// SnapshotStore 获取快照存储
func (c *Container) SnapshotStore() port.SnapshotStore {
	return c.store
}

// Close 关闭所有资源（按后进先出顺序）
func (c *Container) Close() error {
	var err error
	c.closeOnce.Do(func() {
		for i := len(c.closerChain) - 1; i >= 0; i-- {
			if e := c.closerChain[i](); e != nil {
				log.Error().Err(e).Msg("error closing resource")
				if err == nil {
					err = e
				}
			}
		}
		log.Info().Msg("container closed")
	})
	return err
}
