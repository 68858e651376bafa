// Package store serializes state transitions for one mounted client and
// hands read-only snapshots to presentation code.
package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/alumnet/internal/client/metrics"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

// Store owns the client state. Every transition goes through Dispatch, one
// at a time; readers get immutable snapshots.
type Store struct {
	mu      sync.Mutex
	state   state.State
	reducer state.Reducer
	closed  bool

	// stale-response guard
	guard  bool
	seq    uint64
	latest map[state.Slot]uint64

	subs   map[int]chan state.State
	nextID int

	logger  logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithReducer replaces the default reducer, e.g. to keep stale filters.
func WithReducer(r state.Reducer) Option {
	return func(s *Store) { s.reducer = r }
}

// WithStaleGuard makes the store drop a result whose ticket is older than
// the newest ticket issued for the same slot.
func WithStaleGuard(on bool) Option {
	return func(s *Store) { s.guard = on }
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics counts applied and discarded actions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New mounts a store holding state.Initial().
func New(opts ...Option) *Store {
	s := &Store{
		state:  state.Initial(),
		latest: make(map[state.Slot]uint64),
		subs:   make(map[int]chan state.State),
		logger: logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Begin issues the ticket a command attaches to its result action.
// Tickets are strictly increasing across all slots.
func (s *Store) Begin(slot state.Slot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.latest[slot] = s.seq
	return s.seq
}

// Dispatch applies a and reports whether the snapshot was replaced. It
// returns false after Close and for results dropped by the stale guard.
func (s *Store) Dispatch(ctx context.Context, a state.Action) bool {
	name := state.Name(a)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Debug(ctx, "dispatch after close ignored", "action", name)
		return false
	}

	if r, ok := a.(state.Result); ok && s.stale(r) {
		s.mu.Unlock()
		s.logger.Info(ctx, "stale result discarded",
			"action", name, "slot", r.Target().String(), "seq", r.Sequence())
		s.metrics.IncDiscarded(r.Target().String())
		return false
	}

	s.state = s.reducer.Apply(s.state, a)
	snap := s.state
	for _, ch := range s.subs {
		publish(ch, snap)
	}
	s.mu.Unlock()

	s.metrics.IncApplied(name)
	s.logger.Debug(ctx, "action applied", state.Attrs(a)...)
	return true
}

func (s *Store) stale(r state.Result) bool {
	if !s.guard || r.Sequence() == 0 {
		return false
	}
	return r.Sequence() < s.latest[r.Target()]
}

// Snapshot returns the current state. Callers must not modify its slices.
func (s *Store) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives the newest snapshot after each
// applied action. Slow readers see only the latest snapshot. The channel is
// closed by cancel or Close.
func (s *Store) Subscribe() (<-chan state.State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan state.State, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close tears the store down: subscribers are closed and later dispatches
// are ignored. The last snapshot stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// publish replaces any unread snapshot in ch with snap. Callers hold s.mu,
// which makes the drain-and-send atomic with respect to other publishers.
func publish(ch chan state.State, snap state.State) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}
