package storage

import (
	"context"
	"testing"

	"fxwatch/internal/domain"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	if _, ok, err := s.Get(ctx, "USD/EUR"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := domain.Quote{Bid: "1.10", Ask: "1.12"}
	if err := s.Put(ctx, "USD/EUR", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got, ok, err := s.Get(ctx, "USD/EUR"); !ok || err != nil || got != want {
		t.Errorf("Get = %+v ok=%v err=%v", got, ok, err)
	}

	if err := s.Put(ctx, "USD/EUR", domain.Quote{Bid: "1.11", Ask: "1.13"}); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if got, _, _ := s.Get(ctx, "USD/EUR"); got.Bid != "1.11" {
		t.Errorf("overwrite not applied: %+v", got)
	}

	if err := s.Delete(ctx, "USD/EUR"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "USD/EUR"); err != nil {
		t.Fatalf("Delete of missing key failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "USD/EUR"); ok {
		t.Error("key should be gone")
	}
}

func TestEncodeFormat(t *testing.T) {
	v, err := Encode(domain.Quote{Bid: "1.10", Ask: "1.12"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if v != `{"bid":"1.10","ask":"1.12"}` {
		t.Errorf("Encode = %s", v)
	}
	if _, err := Decode("k", "{"); err == nil {
		t.Error("expected decode error")
	}
}
