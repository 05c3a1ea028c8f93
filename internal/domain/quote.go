package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Quote is the bid/ask pair for one currency code.
// Prices keep the text the feed sent; they are only parsed when compared.
type Quote struct {
	Bid string `json:"bid"`
	Ask string `json:"ask"`
}

// IsZero reports whether the quote carries no prices at all.
func (q Quote) IsZero() bool {
	return q.Bid == "" && q.Ask == ""
}

// UnmarshalJSON accepts bid/ask as JSON strings or numbers. Any other JSON
// value is kept as its raw text.
func (q *Quote) UnmarshalJSON(b []byte) error {
	var raw struct {
		Bid json.RawMessage `json:"bid"`
		Ask json.RawMessage `json:"ask"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	bid, err := rawPrice(raw.Bid)
	if err != nil {
		return fmt.Errorf("bid: %w", err)
	}
	ask, err := rawPrice(raw.Ask)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	q.Bid, q.Ask = bid, ask
	return nil
}

func rawPrice(b json.RawMessage) (string, error) {
	if len(b) == 0 || string(b) == "null" {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// not a number: keep the text, it compares as unchanged
		return string(b), nil
	}
	return n.String(), nil
}

// QuoteMap maps a currency code (case-sensitive, as received) to its quote.
type QuoteMap map[string]Quote

// Clone returns an independent copy of m.
func (m QuoteMap) Clone() QuoteMap {
	out := make(QuoteMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
