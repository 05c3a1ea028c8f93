package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
)

// Encode serializes a quote the way every backend stores it.
func Encode(q domain.Quote) (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode is the inverse of Encode.
func Decode(key, v string) (domain.Quote, error) {
	var q domain.Quote
	if err := json.Unmarshal([]byte(v), &q); err != nil {
		return domain.Quote{}, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return q, nil
}

// InMemoryStore is a SnapshotStore that lives for the process only.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]string)}
}

func (s *InMemoryStore) Get(ctx context.Context, key string) (domain.Quote, bool, error) {
	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return domain.Quote{}, false, nil
	}
	q, err := Decode(key, v)
	if err != nil {
		return domain.Quote{}, false, err
	}
	return q, true, nil
}

func (s *InMemoryStore) Put(ctx context.Context, key string, q domain.Quote) error {
	v, err := Encode(q)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}

var (
	_ port.SnapshotStore  = (*InMemoryStore)(nil)
	_ port.SnapshotLister = (*InMemoryStore)(nil)
)
