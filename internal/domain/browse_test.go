package domain

import (
	"fmt"
	"reflect"
	"testing"
)

func codes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("C%02d/USD", i+1)
	}
	return out
}

func TestFilterCaseInsensitive(t *testing.T) {
	all := []string{"EUR/GBP", "USD/EUR", "GBP/JPY", "AUD/USD"}

	got := Filter(all, "usd")
	want := []string{"USD/EUR", "AUD/USD"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(usd) = %v, want %v", got, want)
	}

	if got := Filter(all, ""); !reflect.DeepEqual(got, all) {
		t.Errorf("empty term should keep everything, got %v", got)
	}
	if got := Filter(all, "xyz"); len(got) != 0 {
		t.Errorf("expected no match, got %v", got)
	}
}

func TestPaginate(t *testing.T) {
	filtered := codes(25)

	p := Paginate(filtered, 1, 10)
	if p.TotalPages != 3 || p.Number != 1 || len(p.Codes) != 10 {
		t.Fatalf("page 1 = %+v", p)
	}
	if p.HasPrev() || !p.HasNext() {
		t.Errorf("page 1 prev/next = %v/%v", p.HasPrev(), p.HasNext())
	}

	p = Paginate(filtered, 3, 10)
	if len(p.Codes) != 5 || p.Codes[0] != "C21/USD" {
		t.Errorf("page 3 codes = %v", p.Codes)
	}
	if !p.HasPrev() || p.HasNext() {
		t.Errorf("page 3 prev/next = %v/%v", p.HasPrev(), p.HasNext())
	}

	p = Paginate(filtered, 4, 10)
	if p.Number != 3 {
		t.Errorf("page 4 should clamp to 3, got %d", p.Number)
	}

	p = Paginate(filtered, 0, 10)
	if p.Number != 1 {
		t.Errorf("page 0 should clamp to 1, got %d", p.Number)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, 2, 10)
	if p.Number != 1 || p.TotalPages != 0 || len(p.Codes) != 0 {
		t.Errorf("empty page = %+v", p)
	}
	if p.HasNext() || p.HasPrev() {
		t.Error("empty page should have no prev/next")
	}
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(codes(11), 1, 0)
	if len(p.Codes) != DefaultPageSize || p.TotalPages != 2 {
		t.Errorf("default size page = %+v", p)
	}
}

func TestNextDisabledExactlyOnLastPage(t *testing.T) {
	filtered := codes(25)
	for page := 1; page <= 3; page++ {
		p := Paginate(filtered, page, 10)
		if p.HasNext() == (p.Number == p.TotalPages) {
			t.Errorf("page %d: HasNext=%v TotalPages=%d", page, p.HasNext(), p.TotalPages)
		}
	}
}
