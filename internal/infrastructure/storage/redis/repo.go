package redis

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
	"fxwatch/internal/infrastructure/storage"
)

// Repo keeps all snapshots in one hash: <prefix>:snapshots, field = key.
type Repo struct {
	rdb     *redis.Client
	ttl     time.Duration
	keyHash string
}

func New(rdb *redis.Client, prefix string, ttl time.Duration) *Repo {
	if prefix == "" {
		prefix = "fxwatch"
	}
	return &Repo{
		rdb:     rdb,
		ttl:     ttl,
		keyHash: prefix + ":snapshots",
	}
}

func (r *Repo) Get(ctx context.Context, key string) (domain.Quote, bool, error) {
	v, err := r.rdb.HGet(ctx, r.keyHash, key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Quote{}, false, nil
	}
	if err != nil {
		return domain.Quote{}, false, err
	}
	q, err := storage.Decode(key, v)
	if err != nil {
		return domain.Quote{}, false, err
	}
	return q, true, nil
}

func (r *Repo) Put(ctx context.Context, key string, q domain.Quote) error {
	v, err := storage.Encode(q)
	if err != nil {
		return err
	}
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyHash, key, v)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyHash, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) Delete(ctx context.Context, key string) error {
	return r.rdb.HDel(ctx, r.keyHash, key).Err()
}

func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.rdb.HKeys(ctx, r.keyHash).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *Repo) Close() error { return r.rdb.Close() }

var (
	_ port.SnapshotStore  = (*Repo)(nil)
	_ port.SnapshotLister = (*Repo)(nil)
)
