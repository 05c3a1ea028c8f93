package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Signal is the direction a price moved relative to a prior observation.
type Signal int

const (
	Unchanged Signal = 0
	Increased Signal = +1
	Decreased Signal = -1
)

func (s Signal) String() string {
	switch s {
	case Increased:
		return "increased"
	case Decreased:
		return "decreased"
	default:
		return "unchanged"
	}
}

// Color is the display colour for the signal; empty means the default colour.
func (s Signal) Color() string {
	switch s {
	case Increased:
		return "green"
	case Decreased:
		return "red"
	default:
		return ""
	}
}

// Comparison holds the bid and ask signals of one quote against a prior one.
type Comparison struct {
	Bid Signal
	Ask Signal
}

// Compare derives bid and ask signals of current against prior.
// Prices are compared as decimals, so "1.50" and "1.5" are equal.
// A side that does not parse on either quote is Unchanged.
func Compare(current, prior Quote) Comparison {
	return Comparison{
		Bid: compareField(current.Bid, prior.Bid),
		Ask: compareField(current.Ask, prior.Ask),
	}
}

func compareField(cur, prev string) Signal {
	c, err := decimal.NewFromString(strings.TrimSpace(cur))
	if err != nil {
		return Unchanged
	}
	p, err := decimal.NewFromString(strings.TrimSpace(prev))
	if err != nil {
		return Unchanged
	}
	switch c.Cmp(p) {
	case 1:
		return Increased
	case -1:
		return Decreased
	default:
		return Unchanged
	}
}
