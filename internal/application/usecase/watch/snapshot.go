package watch

import (
	"context"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
)

// SentinelKey is the snapshot slot holding the most recently selected quote.
const SentinelKey = "selectedPrice"

// SnapshotCache fronts a SnapshotStore. The sentinel lives in an explicit
// single-slot field and is written through to the store; every other key
// (one per currency) goes straight to the store.
type SnapshotCache struct {
	store    port.SnapshotStore
	baseline *domain.Quote
}

func NewSnapshotCache(store port.SnapshotStore) *SnapshotCache {
	return &SnapshotCache{store: store}
}

// Init discards any sentinel left by a previous run. Call once at startup,
// before the first selection.
func (c *SnapshotCache) Init(ctx context.Context) error {
	c.baseline = nil
	return c.store.Delete(ctx, SentinelKey)
}

func (c *SnapshotCache) Read(ctx context.Context, key string) (domain.Quote, bool, error) {
	if key == SentinelKey {
		if c.baseline == nil {
			return domain.Quote{}, false, nil
		}
		return *c.baseline, true, nil
	}
	return c.store.Get(ctx, key)
}

func (c *SnapshotCache) Write(ctx context.Context, key string, q domain.Quote) error {
	if key == SentinelKey {
		b := q
		c.baseline = &b
	}
	return c.store.Put(ctx, key, q)
}
