package feed

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"fxwatch/internal/application/port"
)

const (
	DefaultRequest     = "prices"
	defaultDialTimeout = 10 * time.Second
	closeWait          = time.Second
)

var (
	ErrEmptyURL = errors.New("feed ws_url empty")
	errClosed   = errors.New("feed closed")
)

// transitions lists the allowed moves of the connection state machine.
var transitions = map[port.FeedState][]port.FeedState{
	port.FeedConnecting: {port.FeedOpen, port.FeedErrored, port.FeedClosed},
	port.FeedOpen:       {port.FeedErrored, port.FeedClosed},
	port.FeedErrored:    {port.FeedClosed},
}

type Option func(*Connection)

// WithRequest overrides the subscription request sent after open.
func WithRequest(req string) Option {
	return func(c *Connection) {
		if strings.TrimSpace(req) != "" {
			c.request = req
		}
	}
}

// WithDialTimeout bounds the websocket handshake; zero means no bound.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Connection) { c.dialTimeout = d }
}

func WithDialer(d *websocket.Dialer) Option {
	return func(c *Connection) { c.dialer = d }
}

// Connection owns one websocket connection to the quote feed. It does not
// reconnect: once closed or errored the event channel is closed.
type Connection struct {
	wsURL       string
	request     string
	dialTimeout time.Duration
	dialer      *websocket.Dialer

	mu         sync.Mutex
	conn       *websocket.Conn
	dialing    net.Conn
	cancelDial context.CancelFunc
	state      port.FeedState
	started    bool
	closed     bool
}

func NewConnection(wsURL string, opts ...Option) *Connection {
	c := &Connection{
		wsURL:       strings.TrimSpace(wsURL),
		request:     DefaultRequest,
		dialTimeout: defaultDialTimeout,
		dialer:      websocket.DefaultDialer,
		state:       port.FeedConnecting,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Connection) Name() string { return "quotes" }

func (c *Connection) State() port.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe dials the feed in the background and streams its events.
// It may be called once per Connection.
func (c *Connection) Subscribe(ctx context.Context) (<-chan port.FeedEvent, error) {
	if c.wsURL == "" {
		return nil, ErrEmptyURL
	}
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil, errors.New("feed already subscribed")
	}
	c.started = true
	c.mu.Unlock()

	out := make(chan port.FeedEvent, 64)
	go c.run(ctx, out)
	return out, nil
}

func (c *Connection) run(ctx context.Context, out chan<- port.FeedEvent) {
	defer close(out)

	emit(ctx, out, port.FeedEvent{Kind: port.EventState, State: port.FeedConnecting})
	log.Info().Str("feed", c.Name()).Str("url", c.wsURL).Msg("ws connecting")

	conn, err := c.dial(ctx)
	if err != nil {
		if ctx.Err() != nil || c.isClosed() {
			log.Info().Str("feed", c.Name()).Msg("ws dial aborted")
			c.finish(ctx, out, nil)
			return
		}
		log.Error().Str("feed", c.Name()).Err(err).Msg("ws dial failed")
		c.finish(ctx, out, err)
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		c.finish(ctx, out, nil)
		return
	}
	c.conn = conn
	c.mu.Unlock()

	c.transition(ctx, out, port.FeedOpen, nil)
	log.Info().Str("feed", c.Name()).Msg("ws connected")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(c.request)); err != nil {
		c.closeConn()
		c.finish(ctx, out, err)
		return
	}

	err = readLoop(ctx, conn, func(b []byte) {
		prices, err := Decode(b)
		if err != nil {
			log.Warn().Str("feed", c.Name()).Err(err).Msg("feed message rejected")
			emit(ctx, out, port.FeedEvent{Kind: port.EventParseError, State: port.FeedOpen, Err: err})
			return
		}
		emit(ctx, out, port.FeedEvent{Kind: port.EventPrices, State: port.FeedOpen, Prices: prices})
	})
	c.closeConn()

	if ctx.Err() != nil || c.isClosed() || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		err = nil
	}
	c.finish(ctx, out, err)
}

// dial runs the websocket handshake. Cancelling ctx or calling Close aborts
// it, including after the TCP connection is up.
func (c *Connection) dial(ctx context.Context) (*websocket.Conn, error) {
	dctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.dialTimeout > 0 {
		var tcancel context.CancelFunc
		dctx, tcancel = context.WithTimeout(dctx, c.dialTimeout)
		defer tcancel()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errClosed
	}
	c.cancelDial = cancel
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.cancelDial = nil
		c.dialing = nil
		c.mu.Unlock()
	}()

	d := *c.dialer
	netDial := d.NetDialContext
	if netDial == nil && d.NetDial != nil {
		plain := d.NetDial
		netDial = func(_ context.Context, network, addr string) (net.Conn, error) {
			return plain(network, addr)
		}
	}
	if netDial == nil {
		nd := &net.Dialer{}
		netDial = nd.DialContext
	}
	d.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		nc, err := netDial(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if err := dctx.Err(); err != nil {
			_ = nc.Close()
			return nil, err
		}
		c.dialing = nc
		return nc, nil
	}

	// the handshake itself only honours deadlines, so close the socket on cancel
	stop := context.AfterFunc(dctx, func() {
		c.mu.Lock()
		nc := c.dialing
		c.mu.Unlock()
		if nc != nil {
			_ = nc.Close()
		}
	})
	conn, _, err := d.DialContext(dctx, c.wsURL, nil)
	if !stop() && err == nil {
		_ = conn.Close()
		return nil, dctx.Err()
	}
	return conn, err
}

// finish moves to errored (when err is set) and then closed.
func (c *Connection) finish(ctx context.Context, out chan<- port.FeedEvent, err error) {
	if err != nil {
		c.transition(ctx, out, port.FeedErrored, err)
	}
	c.transition(ctx, out, port.FeedClosed, nil)
	log.Info().Str("feed", c.Name()).Msg("ws closed")
}

func (c *Connection) transition(ctx context.Context, out chan<- port.FeedEvent, next port.FeedState, err error) {
	c.mu.Lock()
	cur := c.state
	allowed := false
	for _, s := range transitions[cur] {
		if s == next {
			allowed = true
			break
		}
	}
	if allowed {
		c.state = next
	}
	c.mu.Unlock()

	if !allowed {
		log.Debug().Str("from", cur.String()).Str("to", next.String()).Msg("ignored feed state transition")
		return
	}
	emit(ctx, out, port.FeedEvent{Kind: port.EventState, State: next, Err: err})
}

// emit delivers ev unless ctx is done. State events after cancellation are
// still attempted without blocking so a buffered reader can observe them.
func emit(ctx context.Context, out chan<- port.FeedEvent, ev port.FeedEvent) {
	select {
	case out <- ev:
	case <-ctx.Done():
		select {
		case out <- ev:
		default:
		}
	}
}

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Connection) closeConn() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()
	if conn == nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeWait))
	_ = conn.Close()
}

// Close tears the connection down, aborting a handshake in progress. It is safe to call more than once and
// from any goroutine.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancelDial := c.cancelDial
	c.mu.Unlock()

	if cancelDial != nil {
		cancelDial()
	}
	c.closeConn()
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			onMsg(b)
		}
	}()

	select {
	case <-ctx.Done():
		// unblocks ReadMessage
		_ = conn.Close()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

var _ port.QuoteFeed = (*Connection)(nil)
