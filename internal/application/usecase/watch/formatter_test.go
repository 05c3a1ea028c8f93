package watch

import (
	"context"
	"strings"
	"testing"

	"fxwatch/internal/application/port"
	"fxwatch/internal/domain"
)

func TestFormatterRenderSelection(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, newMockStore())
	f := NewFormatter()

	s.ApplyPrices(ctx, domain.QuoteMap{"USD/EUR": {Bid: "1.10", Ask: "1.12"}})
	_ = s.Select(ctx, "USD/EUR")
	s.ApplyPrices(ctx, domain.QuoteMap{"USD/EUR": {Bid: "1.15", Ask: "1.09"}})
	_ = s.Select(ctx, "USD/EUR")

	out := f.Render(s, port.FeedOpen, "")
	for _, want := range []string{
		"Prices for USD/EUR",
		ansiGreen + "Bid: 1.15" + ansiReset,
		ansiRed + "Ask: 1.09" + ansiReset,
		"Page 1 of 1",
		"> " + " 1. USD/EUR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatterRenderNoComparisonUsesDefaultColor(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, newMockStore())
	s.ApplyPrices(ctx, domain.QuoteMap{"USD/EUR": {Bid: "1.10", Ask: "1.12"}})
	_ = s.Select(ctx, "USD/EUR")

	out := NewFormatter().Render(s, port.FeedOpen, "")
	if !strings.Contains(out, "\nBid: 1.10\n") || !strings.Contains(out, "\nAsk: 1.12\n") {
		t.Errorf("expected uncoloured prices in:\n%s", out)
	}
}

func TestFormatterRenderEmpty(t *testing.T) {
	s := newTestSession(t, newMockStore())
	out := NewFormatter().Render(s, port.FeedConnecting, "unknown currency: X")

	for _, want := range []string{"feed: connecting", "(no currencies)", "Page 1 of 0", "unknown currency: X"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Prices for") {
		t.Error("no detail panel expected without a selection")
	}
}
