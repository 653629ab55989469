package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	tracer = otel.Tracer("github.com/creotizant/HCM-Landing/internal/nav")
	meter  = otel.Meter("github.com/creotizant/HCM-Landing/internal/nav")

	navigations, _     = meter.Int64Counter("nav.navigations", metric.WithDescription("Navigation requests by selected view."))
	viewLoadErrs, _    = meter.Int64Counter("nav.view_load.errors", metric.WithDescription("View loads that failed."))
	supersededLoads, _ = meter.Int64Counter("nav.view_load.superseded", metric.WithDescription("View loads finished after a newer navigation."))
)

// ErrSuperseded is returned by Await when a newer navigation replaced the
// ticket before its view was mounted.
var ErrSuperseded = errors.New("nav: navigation superseded")

var errInvalidTicket = errors.New("nav: invalid ticket")

// View is a loaded view implementation.
type View interface {
	Name() string
	Render(w io.Writer, data any, fragment bool) error
}

// Loader fetches a view implementation by key. Loads may be slow and run
// off the caller's goroutine.
type Loader interface {
	Load(ctx context.Context, view string) (View, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, view string) (View, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, view string) (View, error) { return f(ctx, view) }

// Scroller resets the viewport when a transition starts.
type Scroller interface {
	ScrollToOrigin()
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func()

// ScrollToOrigin calls f.
func (f ScrollerFunc) ScrollToOrigin() { f() }

// Overlays is the transient chrome state closed by every navigation.
type Overlays struct {
	MobileMenuOpen bool
	Dropdown       string
}

// AnyOpen reports whether an overlay is showing.
func (o Overlays) AnyOpen() bool { return o.MobileMenuOpen || o.Dropdown != "" }

// Mounted is the view currently on screen.
type Mounted struct {
	Generation uint64
	PageID     string
	Selection  Selection
	View       View
}

// State is a consistent snapshot of a shell.
type State struct {
	Current    string
	Generation uint64
	Overlays   Overlays
}

// Ticket identifies one navigation. Its generation is the token that decides
// whether a finished load may still be mounted.
type Ticket struct {
	Generation uint64
	PageID     string
	Selection  Selection

	load       *pendingLoad
	superseded <-chan struct{}
}

// Done is closed once the ticket's view load finished, mounted or not.
func (t Ticket) Done() <-chan struct{} {
	if t.load == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.load.done
}

type pendingLoad struct {
	done chan struct{}
	err  error
}

// Shell owns the navigation state of one session. The zero value is not
// usable; construct with NewShell.
type Shell struct {
	lookup  Lookup
	loader  Loader
	logger  *zap.Logger
	baseCtx context.Context

	mu         sync.Mutex
	current    string
	generation uint64
	overlays   Overlays
	mounted    Mounted
	hasMounted bool
	next       chan struct{}
}

// Option customises a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBaseContext sets the parent context of background view loads.
func WithBaseContext(ctx context.Context) Option {
	return func(s *Shell) {
		if ctx != nil {
			s.baseCtx = ctx
		}
	}
}

// NewShell returns a shell positioned on the default page with nothing
// mounted yet.
func NewShell(lookup Lookup, loader Loader, opts ...Option) *Shell {
	s := &Shell{
		lookup:  lookup,
		loader:  loader,
		logger:  zap.NewNop(),
		baseCtx: context.Background(),
		current: string(DefaultPage),
		next:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the page id of the latest navigation request.
func (s *Shell) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Snapshot returns the current id, generation and overlay state together.
func (s *Shell) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Current: s.current, Generation: s.generation, Overlays: s.overlays}
}

// Displayed returns the mounted view, if any load has completed yet.
func (s *Shell) Displayed() (Mounted, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted, s.hasMounted
}

// Navigate moves the session to id. Any string is accepted. Overlays close,
// sc is asked to scroll exactly once and the selected view starts loading in
// the background. The previous view stays mounted until the load finishes.
func (s *Shell) Navigate(id string, sc Scroller) Ticket {
	sel := ResolveView(s.lookup, id)
	pl := &pendingLoad{done: make(chan struct{})}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.current = id
	s.overlays = Overlays{}
	close(s.next)
	s.next = make(chan struct{})
	superseded := s.next
	s.mu.Unlock()

	if sc != nil {
		sc.ScrollToOrigin()
	}
	navigations.Add(s.baseCtx, 1, metric.WithAttributes(attribute.String("nav.view", sel.View)))

	go s.load(gen, id, sel, pl)

	return Ticket{
		Generation: gen,
		PageID:     id,
		Selection:  sel,
		load:       pl,
		superseded: superseded,
	}
}

func (s *Shell) load(gen uint64, id string, sel Selection, pl *pendingLoad) {
	ctx, span := tracer.Start(s.baseCtx, "nav.load_view", trace.WithAttributes(
		attribute.String("nav.view", sel.View),
		attribute.Int64("nav.generation", int64(gen)),
	))
	defer span.End()

	var (
		view View
		err  error
	)
	if s.loader == nil {
		err = fmt.Errorf("nav: no loader for view %q", sel.View)
	} else {
		view, err = s.loader.Load(ctx, sel.View)
		if err == nil && view == nil {
			err = fmt.Errorf("nav: loader returned no view for %q", sel.View)
		}
	}

	s.mu.Lock()
	pl.err = err
	latest := s.generation == gen
	if latest && err == nil {
		s.mounted = Mounted{Generation: gen, PageID: id, Selection: sel, View: view}
		s.hasMounted = true
	}
	s.mu.Unlock()
	close(pl.done)

	switch {
	case err != nil:
		viewLoadErrs.Add(ctx, 1, metric.WithAttributes(attribute.String("nav.view", sel.View)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "view load failed")
		s.logger.Warn("view load failed",
			zap.String("view", sel.View),
			zap.Uint64("generation", gen),
			zap.Error(err),
		)
	case !latest:
		supersededLoads.Add(ctx, 1)
		span.SetAttributes(attribute.Bool("nav.superseded", true))
		s.logger.Debug("discarding superseded view load",
			zap.String("view", sel.View),
			zap.Uint64("generation", gen),
		)
	}
}

// Await blocks until t's view is mounted. It returns ErrSuperseded as soon as
// a newer navigation exists, the load error if the view could not be loaded,
// or ctx's error if ctx ends first. A superseded ticket never mounts.
func (s *Shell) Await(ctx context.Context, t Ticket) (Mounted, error) {
	if t.load == nil {
		return Mounted{}, errInvalidTicket
	}
	select {
	case <-t.load.done:
	case <-t.superseded:
		return Mounted{}, ErrSuperseded
	case <-ctx.Done():
		return Mounted{}, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != t.Generation {
		return Mounted{}, ErrSuperseded
	}
	if t.load.err != nil {
		return Mounted{}, t.load.err
	}
	return s.mounted, nil
}

// Overlays returns the overlay state.
func (s *Shell) Overlays() Overlays {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlays
}

// ToggleMobileMenu flips the mobile menu and closes any dropdown.
func (s *Shell) ToggleMobileMenu() Overlays {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays.MobileMenuOpen = !s.overlays.MobileMenuOpen
	s.overlays.Dropdown = ""
	return s.overlays
}

// OpenDropdown shows the named dropdown. An empty name closes it.
func (s *Shell) OpenDropdown(name string) Overlays {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays.Dropdown = name
	return s.overlays
}

// CloseOverlays hides every overlay.
func (s *Shell) CloseOverlays() {
	s.mu.Lock()
	s.overlays = Overlays{}
	s.mu.Unlock()
}
