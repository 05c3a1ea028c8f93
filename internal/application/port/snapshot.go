package port

import (
	"context"

	"fxwatch/internal/domain"
)

// SnapshotStore is durable key-value storage for quote snapshots.
type SnapshotStore interface {
	// Get returns the quote stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (q domain.Quote, ok bool, err error)
	// Put stores q under key, overwriting any prior value.
	Put(ctx context.Context, key string, q domain.Quote) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// SnapshotLister is implemented by stores that can enumerate their keys.
type SnapshotLister interface {
	Keys(ctx context.Context) ([]string, error)
}
