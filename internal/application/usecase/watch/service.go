package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"fxwatch/internal/application/port"
)

var ErrNoFeed = errors.New("no feed")

type ServiceDeps struct {
	Feed     port.QuoteFeed
	Store    port.SnapshotStore
	Commands <-chan port.Command // nil: no user input, watch only
	PageSize int
	Sink     port.Sink
}

// Service runs the single event loop: feed events and user commands are
// handled one at a time, in arrival order.
type Service struct {
	deps    ServiceDeps
	session *Session
	fmt     *Formatter

	feedState port.FeedState
	notice    string
}

func NewService(deps ServiceDeps) *Service {
	return &Service{
		deps:    deps,
		session: NewSession(NewQuoteStore(), NewSnapshotCache(deps.Store), deps.PageSize),
		fmt:     NewFormatter(),
	}
}

func (s *Service) Session() *Session { return s.session }

// Run blocks until ctx is done, the user quits, or input ends. The feed
// connection is closed, and its event channel drained, before Run returns.
func (s *Service) Run(ctx context.Context) error {
	if s.deps.Feed == nil {
		return ErrNoFeed
	}
	if err := s.session.Start(ctx); err != nil {
		return fmt.Errorf("init snapshot cache: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := s.deps.Feed.Subscribe(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("feed", s.deps.Feed.Name()).Msg("feed started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		err := s.deps.Feed.Close()
		// wait for the feed to finish its teardown
		for range events {
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		return s.loop(gctx, events)
	})
	return g.Wait()
}

func (s *Service) loop(ctx context.Context, events <-chan port.FeedEvent) error {
	commands := s.deps.Commands
	s.render()

	for {
		select {
		case <-ctx.Done():
			_ = s.deps.Sink.NewLine()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				// connection gone; keep serving the last known quotes
				events = nil
				continue
			}
			s.HandleFeedEvent(ctx, ev)

		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			if quit := s.HandleCommand(ctx, cmd); quit {
				_ = s.deps.Sink.NewLine()
				return nil
			}
		}
		s.render()
	}
}

// HandleFeedEvent applies one feed event to the session.
func (s *Service) HandleFeedEvent(ctx context.Context, ev port.FeedEvent) {
	switch ev.Kind {
	case port.EventState:
		s.feedState = ev.State
		switch ev.State {
		case port.FeedErrored:
			log.Warn().Err(ev.Err).Msg("feed connection error")
		case port.FeedClosed:
			log.Info().Msg("feed connection closed")
		default:
			log.Info().Str("state", ev.State.String()).Msg("feed state")
		}

	case port.EventPrices:
		s.session.ApplyPrices(ctx, ev.Prices)

	case port.EventParseError:
		log.Warn().Err(ev.Err).Msg("feed message ignored")
	}
}

// HandleCommand applies one user command and reports whether to quit.
func (s *Service) HandleCommand(ctx context.Context, cmd port.Command) bool {
	s.notice = ""
	switch cmd.Kind {
	case port.CmdQuit:
		return true
	case port.CmdSearch:
		s.session.Search(cmd.Arg)
	case port.CmdNextPage:
		s.session.NextPage()
	case port.CmdPrevPage:
		s.session.PrevPage()
	case port.CmdSelect:
		if err := s.session.Select(ctx, cmd.Arg); err != nil {
			s.notice = err.Error()
		}
	case port.CmdSelectRow:
		if err := s.session.SelectRow(ctx, cmd.Row); err != nil {
			s.notice = err.Error()
		}
	case port.CmdRefresh:
	}
	return false
}

func (s *Service) render() {
	if err := s.deps.Sink.WriteScreen(s.fmt.Render(s.session, s.feedState, s.notice)); err != nil {
		log.Error().Err(err).Msg("render failed")
	}
}
