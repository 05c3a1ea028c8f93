package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"fxwatch/internal/domain"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Detail is what the detail panel shows for the selected currency.
type Detail struct {
	Code       string
	Quote      domain.Quote
	Known      bool // false once the code drops out of the feed
	Comparison domain.Comparison
	Compared   bool // false when there was no baseline to compare against
}

// Session is the per-view state: quote table, snapshot cache, selection and
// browse position. It is owned by a single goroutine.
type Session struct {
	quotes   *QuoteStore
	cache    *SnapshotCache
	pageSize int

	selected string
	cmp      domain.Comparison
	compared bool

	term string
	page int
}

func NewSession(quotes *QuoteStore, cache *SnapshotCache, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Session{
		quotes:   quotes,
		cache:    cache,
		pageSize: pageSize,
		page:     1,
	}
}

// Start resets the selection baseline left by any earlier run.
func (s *Session) Start(ctx context.Context) error {
	return s.cache.Init(ctx)
}

// ApplyPrices replaces the quote table and records the selected currency's
// new quote under its own snapshot key.
func (s *Session) ApplyPrices(ctx context.Context, m domain.QuoteMap) {
	s.quotes.ReplaceAll(m)
	s.recordSelected(ctx)
}

// Select makes code the selected currency. The quote is compared with the
// sentinel, i.e. whatever currency was selected last, not with code's own
// history; the sentinel then takes code's current quote.
func (s *Session) Select(ctx context.Context, code string) error {
	q, ok := s.quotes.Get(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}

	prior, found, err := s.cache.Read(ctx, SentinelKey)
	if err != nil {
		log.Warn().Err(err).Str("key", SentinelKey).Msg("read snapshot failed")
		found = false
	}
	if found && !prior.IsZero() {
		s.cmp = domain.Compare(q, prior)
		s.compared = true
	} else {
		s.cmp = domain.Comparison{}
		s.compared = false
	}

	if err := s.cache.Write(ctx, SentinelKey, q); err != nil {
		log.Warn().Err(err).Str("key", SentinelKey).Msg("write snapshot failed")
	}

	s.selected = code
	s.recordSelected(ctx)

	log.Debug().
		Str("currency", code).
		Str("bid", s.cmp.Bid.String()).
		Str("ask", s.cmp.Ask.String()).
		Bool("compared", s.compared).
		Msg("currency selected")
	return nil
}

// SelectRow selects the row-th (1-based) code of the current page.
func (s *Session) SelectRow(ctx context.Context, row int) error {
	p := s.View()
	if row < 1 || row > len(p.Codes) {
		return fmt.Errorf("row %d out of range 1..%d", row, len(p.Codes))
	}
	return s.Select(ctx, p.Codes[row-1])
}

func (s *Session) recordSelected(ctx context.Context) {
	if s.selected == "" {
		return
	}
	q, ok := s.quotes.Get(s.selected)
	if !ok {
		return
	}
	if err := s.cache.Write(ctx, s.selected, q); err != nil {
		log.Warn().Err(err).Str("key", s.selected).Msg("write snapshot failed")
	}
}

// Selected returns the selected code, or false when nothing is selected.
func (s *Session) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// Comparison returns the signals computed at the last selection; ok is
// false when that selection had no baseline.
func (s *Session) Comparison() (domain.Comparison, bool) {
	return s.cmp, s.compared
}

func (s *Session) Detail() (Detail, bool) {
	if s.selected == "" {
		return Detail{}, false
	}
	q, known := s.quotes.Get(s.selected)
	return Detail{
		Code:       s.selected,
		Quote:      q,
		Known:      known,
		Comparison: s.cmp,
		Compared:   s.compared,
	}, true
}

// Search sets the filter term and goes back to the first page.
func (s *Session) Search(term string) {
	s.term = term
	s.page = 1
}

func (s *Session) Term() string { return s.term }

func (s *Session) NextPage() {
	p := s.View()
	if p.HasNext() {
		s.page = p.Number + 1
	}
}

func (s *Session) PrevPage() {
	p := s.View()
	if p.HasPrev() {
		s.page = p.Number - 1
	}
}

// View filters and paginates the current codes. The page number is clamped
// to the filtered set as it is now.
func (s *Session) View() domain.Page {
	filtered := domain.Filter(s.quotes.Keys(), s.term)
	p := domain.Paginate(filtered, s.page, s.pageSize)
	s.page = p.Number
	return p
}

func (s *Session) Quotes() *QuoteStore { return s.quotes }
