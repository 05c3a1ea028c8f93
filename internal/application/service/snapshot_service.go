package service

import (
	"context"
	"errors"
	"fmt"

	"fxwatch/internal/application/port"
	"fxwatch/internal/application/usecase/watch"
	"fxwatch/internal/domain"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCannotList       = errors.New("storage backend cannot list keys")
)

// SnapshotService exposes the stored snapshots outside a watch session.
type SnapshotService struct {
	repo port.SnapshotStore
}

func NewSnapshotService(repo port.SnapshotStore) *SnapshotService {
	return &SnapshotService{repo: repo}
}

// Get returns the snapshot under key; an empty key means the last selected quote.
func (s *SnapshotService) Get(ctx context.Context, key string) (domain.Quote, error) {
	if key == "" {
		key = watch.SentinelKey
	}
	q, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return domain.Quote{}, err
	}
	if !ok {
		return domain.Quote{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
	}
	return q, nil
}

func (s *SnapshotService) List(ctx context.Context) ([]string, error) {
	l, ok := s.repo.(port.SnapshotLister)
	if !ok {
		return nil, ErrCannotList
	}
	return l.Keys(ctx)
}

// ClearSelection forgets the last selected quote, as a fresh start would.
func (s *SnapshotService) ClearSelection(ctx context.Context) error {
	return watch.NewSnapshotCache(s.repo).Init(ctx)
}
