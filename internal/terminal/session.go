// Package terminal is an interactive text storefront. A single event loop owns
// the screen: input lines, settled search terms and finished fetches all arrive
// as events and are handled one at a time.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/debounce"
	"storefront/internal/filter"
	"storefront/internal/router"
	"storefront/internal/store"
	"storefront/internal/view"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type (
	lineEvent   struct{ text string }
	searchEvent struct{ term string }
	inputClosed struct{ err error }

	listLoaded   struct{ err error }
	detailLoaded struct {
		id  string
		err error
	}
)

// Option configures a Session.
type Option func(*Session)

// WithPageSize overrides the number of products per page.
func WithPageSize(n int) Option {
	return func(s *Session) {
		s.pageSize = n
	}
}

// WithDebounce sets the search quiet period. A nil clock keeps the real one.
func WithDebounce(delay time.Duration, clock debounce.Clock) Option {
	return func(s *Session) {
		s.delay = delay
		if clock != nil {
			s.clock = clock
		}
	}
}

// Session is one interactive storefront run.
type Session struct {
	in     io.Reader
	out    io.Writer
	client catalog.Client
	logger zerolog.Logger

	pageSize int
	delay    time.Duration
	clock    debounce.Clock

	events  chan any
	list    *view.ListController
	detail  *view.DetailController
	search  *debounce.Debouncer[string]
	route   router.Route
	path    string
	history []string
}

// NewSession creates a session reading commands from in and rendering to out.
func NewSession(in io.Reader, out io.Writer, client catalog.Client, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		in:     in,
		out:    out,
		client: client,
		logger: logger.With().Str("component", "terminal").Logger(),
		delay:  debounce.DefaultDelay,
		clock:  debounce.RealClock,
		events: make(chan any),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the product list and processes input until :quit, end of input or
// ctx is cancelled. Pending searches and in-flight fetches are cancelled before
// Run returns.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	s.list = view.NewListController(s.client, store.NewRepository(), s.logger,
		view.WithPageSize(s.pageSize),
		view.WithPageChangeHook(s.scrollToTop),
	)
	s.detail = view.NewDetailController(s.client, s.logger)
	s.search = debounce.New(s.delay, func(term string) {
		s.post(gctx, searchEvent{term: term})
	}, debounce.WithClock(s.clock))

	defer func() {
		s.search.Close()
		s.list.Close()
		s.detail.Close()
	}()

	// The reader is not part of the group: a blocked read on stdin cannot be
	// interrupted and must not hold up shutdown.
	go s.readInput(gctx)

	g.Go(func() error {
		defer cancel()
		return s.loop(gctx, g)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) loop(ctx context.Context, g *errgroup.Group) error {
	s.navigate(ctx, g, "/", false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-s.events:
			switch ev := ev.(type) {
			case lineEvent:
				if quit := s.handleLine(ctx, g, ev.text); quit {
					return nil
				}
			case searchEvent:
				s.list.SetSearch(ev.term)
				if s.route.Kind == router.RouteList {
					s.render()
				}
			case listLoaded:
				if errors.Is(ev.err, view.ErrStale) {
					continue
				}
				if s.route.Kind == router.RouteList {
					s.render()
				}
			case detailLoaded:
				if errors.Is(ev.err, view.ErrStale) {
					continue
				}
				if s.route.Kind == router.RouteDetail && s.route.ProductID == ev.id {
					s.render()
				}
			case inputClosed:
				if ev.err != nil {
					return fmt.Errorf("reading input: %w", ev.err)
				}
				return nil
			}
		}
	}
}

func (s *Session) handleLine(ctx context.Context, g *errgroup.Group, line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return false
	}

	switch cmd.Kind {
	case CmdQuit:
		return true
	case CmdHelp:
		fmt.Fprint(s.out, helpText)
	case CmdOpen:
		s.navigate(ctx, g, router.Route{Kind: router.RouteDetail, ProductID: cmd.Arg}.Path(), true)
	case CmdGo:
		s.navigate(ctx, g, cmd.Arg, true)
	case CmdBack:
		s.back(ctx, g)
	default:
		s.handleListCommand(cmd)
	}
	return false
}

// handleListCommand applies search, filter and paging commands. They only make
// sense while the list is shown.
func (s *Session) handleListCommand(cmd Command) {
	if s.route.Kind != router.RouteList {
		fmt.Fprintln(s.out, "Not on the product list. :go / to return.")
		return
	}

	facets := s.list.Criteria().Facets

	switch cmd.Kind {
	case CmdSearch:
		s.search.Push(cmd.Arg)
		return
	case CmdPrice:
		b, err := filter.ParsePriceBucket(cmd.Arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		s.list.SetFacets(facets.TogglePrice(b))
	case CmdRating:
		b, err := filter.ParseRatingBucket(cmd.Arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		s.list.SetFacets(facets.ToggleRating(b))
	case CmdBrand:
		s.list.SetFacets(facets.ToggleBrand(cmd.Arg))
	case CmdClear:
		s.search.Cancel()
		s.list.SetCriteria(filter.Criteria{})
	case CmdPage:
		s.list.SetPage(cmd.Page)
	case CmdNext:
		v := s.list.View()
		if !v.HasNext {
			fmt.Fprintln(s.out, "Already on the last page.")
			return
		}
		s.list.SetPage(v.Page + 1)
	case CmdPrev:
		v := s.list.View()
		if !v.HasPrevious {
			fmt.Fprintln(s.out, "Already on the first page.")
			return
		}
		s.list.SetPage(v.Page - 1)
	}

	s.render()
}

// navigate shows the view for path. Entering the list or a detail page starts a
// fresh fetch whose completion renders the view.
func (s *Session) navigate(ctx context.Context, g *errgroup.Group, path string, record bool) {
	if record && s.path != "" {
		s.history = append(s.history, s.path)
	}
	s.path = path
	s.route = router.Resolve(path)
	s.logger.Debug().Str("path", path).Msg("navigated")

	switch s.route.Kind {
	case router.RouteList:
		fmt.Fprintln(s.out, "\nLoading products...")
		g.Go(func() error {
			err := s.list.Load(ctx)
			s.post(ctx, listLoaded{err: err})
			return nil
		})
		return

	case router.RouteDetail:
		id := s.route.ProductID
		if id == "" {
			// Fails without a fetch.
			_ = s.detail.Load(ctx, id)
			break
		}
		fmt.Fprintln(s.out, "\nLoading product...")
		g.Go(func() error {
			err := s.detail.Load(ctx, id)
			s.post(ctx, detailLoaded{id: id, err: err})
			return nil
		})
		return
	}

	s.render()
}

func (s *Session) back(ctx context.Context, g *errgroup.Group) {
	if len(s.history) == 0 {
		fmt.Fprintln(s.out, "Nothing to go back to.")
		return
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.navigate(ctx, g, prev, false)
}

func (s *Session) render() {
	fmt.Fprintln(s.out)
	switch s.route.Kind {
	case router.RouteList:
		renderList(s.out, s.list.View())
	case router.RouteDetail:
		renderDetail(s.out, s.detail.View())
	default:
		renderNotFound(s.out, s.path)
	}
}

func (s *Session) scrollToTop(page int) {
	fmt.Fprintf(s.out, "\n--- page %d ---\n", page)
}

func (s *Session) readInput(ctx context.Context) {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if !s.post(ctx, lineEvent{text: scanner.Text()}) {
			return
		}
	}
	s.post(ctx, inputClosed{err: scanner.Err()})
}

// post delivers ev to the loop, giving up once ctx is done.
func (s *Session) post(ctx context.Context, ev any) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
