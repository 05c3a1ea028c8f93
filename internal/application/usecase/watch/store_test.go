package watch

import (
	"reflect"
	"testing"

	"fxwatch/internal/domain"
)

func TestQuoteStoreReplaceNotMerge(t *testing.T) {
	s := NewQuoteStore()
	if s.Len() != 0 {
		t.Fatalf("new store should be empty")
	}

	messages := []domain.QuoteMap{
		{"USD/EUR": {Bid: "1.10", Ask: "1.12"}, "USD/JPY": {Bid: "150", Ask: "151"}},
		{"EUR/GBP": {Bid: "0.85", Ask: "0.86"}},
		{},
		{"USD/EUR": {Bid: "1.11", Ask: "1.13"}},
	}
	for i, m := range messages {
		s.ReplaceAll(m)
		if got := s.Snapshot(); !reflect.DeepEqual(got, m) {
			t.Errorf("after message %d store = %v, want %v", i, got, m)
		}
	}

	if _, ok := s.Get("USD/JPY"); ok {
		t.Error("USD/JPY should be gone")
	}
}

func TestQuoteStoreIsolatedFromInput(t *testing.T) {
	s := NewQuoteStore()
	m := domain.QuoteMap{"USD/EUR": {Bid: "1.10", Ask: "1.12"}}
	s.ReplaceAll(m)

	m["USD/EUR"] = domain.Quote{Bid: "9", Ask: "9"}
	if q, _ := s.Get("USD/EUR"); q.Bid != "1.10" {
		t.Errorf("store changed through caller's map: %+v", q)
	}
}

func TestQuoteStoreKeysSorted(t *testing.T) {
	s := NewQuoteStore()
	s.ReplaceAll(domain.QuoteMap{"usd/eur": {}, "EUR/GBP": {}, "AUD/USD": {}})

	want := []string{"AUD/USD", "EUR/GBP", "usd/eur"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}
