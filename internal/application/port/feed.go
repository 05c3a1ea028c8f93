package port

import (
	"context"

	"fxwatch/internal/domain"
)

// FeedState is the lifecycle state of a quote feed connection.
//
//	connecting -> open -> closed
//	connecting -> errored -> closed
//	open       -> errored -> closed
type FeedState int

const (
	FeedConnecting FeedState = iota
	FeedOpen
	FeedClosed
	FeedErrored
)

func (s FeedState) String() string {
	switch s {
	case FeedConnecting:
		return "connecting"
	case FeedOpen:
		return "open"
	case FeedClosed:
		return "closed"
	case FeedErrored:
		return "errored"
	default:
		return "unknown"
	}
}

type FeedEventKind int

const (
	// EventState reports a state transition; State holds the new state and
	// Err the cause when the new state is FeedErrored.
	EventState FeedEventKind = iota
	// EventPrices carries a complete, decoded quote map.
	EventPrices
	// EventParseError reports an inbound message that could not be decoded.
	EventParseError
)

type FeedEvent struct {
	Kind   FeedEventKind
	State  FeedState
	Prices domain.QuoteMap
	Err    error
}

// QuoteFeed streams quote snapshots from an external feed.
// The returned channel is closed once the connection is gone; there is
// no reconnection.
type QuoteFeed interface {
	Name() string
	Subscribe(ctx context.Context) (<-chan FeedEvent, error)
	Close() error
}
