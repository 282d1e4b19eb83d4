// Package session owns the signed-in member's visit store and keeps it in
// step with the remote facade.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-gymtrack/internal/config"
	"github.com/tartampluch/go-gymtrack/internal/engine"
	"github.com/tartampluch/go-gymtrack/internal/remote"
)

// ErrStale reports a squad fetch whose target changed while it was in flight.
var ErrStale = errors.New(config.ErrStaleFetch)

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c engine.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithWeekStart sets the first day of the week used by every derived view.
func WithWeekStart(ws time.Weekday) Option {
	return func(s *Session) { s.weekStart = ws }
}

// Session is the client-side state of one member.
//
// The visit store is only touched under mu. Facade calls never hold it, so a
// slow backend cannot block the UI thread reading derived views.
type Session struct {
	facade   remote.Facade
	memberID string
	clock    engine.Clock

	mu        sync.RWMutex
	store     *engine.VisitStore
	weekStart time.Weekday

	lmu       sync.Mutex
	listeners []func()

	// Squad target tracking for stale fetch detection.
	squadMu     sync.Mutex
	squadTarget string
	squadGen    uint64
}

// New creates an empty session for memberID. Call Hydrate to load visits.
func New(facade remote.Facade, memberID string, opts ...Option) *Session {
	s := &Session{
		facade:    facade,
		memberID:  memberID,
		clock:     engine.RealClock{},
		store:     engine.NewVisitStore(memberID),
		weekStart: config.DefaultWeekStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) log() *slog.Logger {
	return slog.With(
		slog.String(config.LogKeyComponent, config.CompSession),
		slog.String(config.LogKeyMember, s.memberID),
	)
}

// MemberID returns the member this session belongs to.
func (s *Session) MemberID() string {
	return s.memberID
}

// Facade returns the facade the session talks to.
func (s *Session) Facade() remote.Facade {
	return s.facade
}

// Today returns the current calendar day.
func (s *Session) Today() engine.Date {
	return engine.Today(s.clock)
}

// WeekStart returns the configured first day of the week.
func (s *Session) WeekStart() time.Weekday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekStart
}

// SetWeekStart changes the week start and notifies listeners.
func (s *Session) SetWeekStart(ws time.Weekday) {
	s.mu.Lock()
	changed := s.weekStart != ws
	s.weekStart = ws
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// OnChange registers fn to run after every hydrate, mutation or rollback.
// Listeners run on the goroutine that caused the change, outside any lock.
func (s *Session) OnChange(fn func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) notify() {
	s.lmu.Lock()
	fns := make([]func(), len(s.listeners))
	copy(fns, s.listeners)
	s.lmu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// -----------------------------------------------------------------------------
// Store synchronisation
// -----------------------------------------------------------------------------

// Hydrate replaces the store with the member's visits from the facade.
// An unknown member yields an empty store; any other failure leaves the
// store untouched.
func (s *Session) Hydrate(ctx context.Context) error {
	visits, err := s.facade.FetchVisits(ctx, s.memberID)
	if err != nil && !errors.Is(err, remote.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	s.store.Replace(visits)
	n := s.store.Len()
	s.mu.Unlock()

	s.log().Info(config.MsgHydrated, config.LogKeyVisits, n)
	s.notify()
	return nil
}

// Confirm records a visit on d. Future dates are rejected before anything
// changes. Confirming an existing visit is a no-op. The store is updated
// first and rolled back if the facade call fails.
func (s *Session) Confirm(ctx context.Context, d engine.Date) error {
	if d.After(s.Today()) {
		return remote.NewError(remote.KindValidation, "Confirm", errors.New(config.ErrFutureVisit))
	}

	s.mu.Lock()
	added := s.store.Add(d)
	s.mu.Unlock()
	if !added {
		return nil
	}
	s.notify()

	if err := s.facade.AddVisit(ctx, s.memberID, d); err != nil {
		s.mu.Lock()
		s.store.Remove(d)
		s.mu.Unlock()

		s.log().Warn(config.MsgRollback, config.LogKeyDate, d.String(), config.LogKeyError, err)
		s.notify()
		return err
	}

	s.log().Info(config.MsgVisitConfirmed, config.LogKeyDate, d.String())
	return nil
}

// Remove deletes the visit on d, with the same optimistic rollback as Confirm.
func (s *Session) Remove(ctx context.Context, d engine.Date) error {
	s.mu.Lock()
	prev, ok := s.store.Get(d)
	if ok {
		s.store.Remove(d)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	s.notify()

	if err := s.facade.RemoveVisit(ctx, s.memberID, d); err != nil {
		s.mu.Lock()
		s.store.AddVisit(prev)
		s.mu.Unlock()

		s.log().Warn(config.MsgRollback, config.LogKeyDate, d.String(), config.LogKeyError, err)
		s.notify()
		return err
	}

	s.log().Info(config.MsgVisitRemoved, config.LogKeyDate, d.String())
	return nil
}

// Toggle confirms d when it has no visit and removes it otherwise.
// It returns whether d holds a visit once the call succeeded.
func (s *Session) Toggle(ctx context.Context, d engine.Date) (bool, error) {
	if s.Has(d) {
		return false, s.Remove(ctx, d)
	}
	return true, s.Confirm(ctx, d)
}

// -----------------------------------------------------------------------------
// Derived views
// -----------------------------------------------------------------------------

// Has reports whether d holds a visit.
func (s *Session) Has(d engine.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Has(d)
}

// Visits returns the visits between start and end inclusive.
func (s *Session) Visits(start, end engine.Date) []engine.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List(start, end)
}

// All returns every known visit in ascending order.
func (s *Session) All() []engine.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.All()
}

// MonthGrid builds the month view around ref.
func (s *Session) MonthGrid(ref, selected engine.Date) []engine.CalendarCell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.BuildMonthGrid(ref, engine.GridOptions{
		WeekStart: s.weekStart,
		Today:     s.Today(),
		Selected:  selected,
		Visits:    s.store,
	})
}

// WeeklyChart returns one bucket per week over span, ending with the
// current week.
func (s *Session) WeeklyChart(span engine.ChartSpan) []engine.WeeklyBucket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w := span.Window(s.Today(), s.weekStart)
	return engine.AggregateWeekly(s.store.Dates(), w, s.weekStart)
}

// VisitsThisWeek counts the visits of the current week.
func (s *Session) VisitsThisWeek() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.VisitsThisWeek(s.store.Dates(), s.Today(), s.weekStart)
}
