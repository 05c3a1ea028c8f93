package composite

import (
	"context"
	"sort"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
)

// Repo fans writes out to every store and reads from the first that has
// the key, in the order given.
type Repo struct {
	repos []port.SnapshotStore
}

func New(repos ...port.SnapshotStore) *Repo {
	// nil repos are allowed; filter in constructor for safety
	out := make([]port.SnapshotStore, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

func (r *Repo) Get(ctx context.Context, key string) (domain.Quote, bool, error) {
	var firstErr error
	for _, repo := range r.repos {
		q, ok, err := repo.Get(ctx, key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return q, true, nil
		}
	}
	return domain.Quote{}, false, firstErr
}

func (r *Repo) Put(ctx context.Context, key string, q domain.Quote) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Put(ctx, key, q); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Repo) Delete(ctx context.Context, key string) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Keys is the sorted union of the keys of every store that can list them.
func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	for _, repo := range r.repos {
		l, ok := repo.(port.SnapshotLister)
		if !ok {
			continue
		}
		keys, err := l.Keys(ctx)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (r *Repo) Close() error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var (
	_ port.SnapshotStore  = (*Repo)(nil)
	_ port.SnapshotLister = (*Repo)(nil)
)
