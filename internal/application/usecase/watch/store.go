package watch

import (
	"sort"
	"sync"

	"fxwatch/internal/domain"
)

// QuoteStore holds the latest quote per currency code.
// It is replaced wholesale on every feed message, never merged.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes domain.QuoteMap
}

func NewQuoteStore() *QuoteStore {
	return &QuoteStore{quotes: domain.QuoteMap{}}
}

// ReplaceAll swaps in a copy of m; readers see either the old or the new map.
func (s *QuoteStore) ReplaceAll(m domain.QuoteMap) {
	next := m.Clone()

	s.mu.Lock()
	s.quotes = next
	s.mu.Unlock()
}

func (s *QuoteStore) Get(code string) (domain.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[code]
	return q, ok
}

// Keys returns the known codes, sorted so paging is stable between messages.
func (s *QuoteStore) Keys() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.quotes))
	for k := range s.quotes {
		out = append(out, k)
	}
	s.mu.RUnlock()

	sort.Strings(out)
	return out
}

func (s *QuoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// Snapshot returns a copy of the whole table.
func (s *QuoteStore) Snapshot() domain.QuoteMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quotes.Clone()
}
