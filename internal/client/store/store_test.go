package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/alumnet/internal/client/metrics"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

func profile(name string) models.User {
	return models.User{ID: "u1", Name: name}
}

func TestStore_DispatchAndSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.Equal(t, state.Initial(), s.Snapshot())

	ok := s.Dispatch(ctx, state.CollegesLoaded{Colleges: []models.College{{ID: "c1", Name: "Tech U"}}})
	require.True(t, ok)

	snap := s.Snapshot()
	require.Equal(t, []models.College{{ID: "c1", Name: "Tech U"}}, snap.Colleges)
	require.Nil(t, snap.Errors.College)
}

func TestStore_SnapshotSurvivesLaterDispatch(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Dispatch(ctx, state.CollegesLoaded{Colleges: []models.College{{ID: "c1"}}})

	old := s.Snapshot()
	s.Dispatch(ctx, state.CollegesLoaded{Colleges: []models.College{{ID: "c2"}, {ID: "c3"}}})

	require.Equal(t, []models.College{{ID: "c1"}}, old.Colleges)
	require.Len(t, s.Snapshot().Colleges, 2)
}

func TestStore_UsesInjectedReducer(t *testing.T) {
	s := New(WithReducer(state.Reducer{KeepStaleFilters: true}))
	ctx := context.Background()

	s.Dispatch(ctx, state.CollegesLoaded{Colleges: []models.College{{ID: "c1", Name: "Tech U"}}})
	s.Dispatch(ctx, state.CollegesFiltered{Text: "tech"})
	s.Dispatch(ctx, state.CollegesLoaded{Colleges: []models.College{}})

	require.Len(t, s.Snapshot().FilteredColleges, 1)
}

func TestStore_LastCompletedWinsByDefault(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := s.Begin(state.SlotSession)
	second := s.Begin(state.SlotSession)
	require.Greater(t, second, first)

	require.True(t, s.Dispatch(ctx, state.SessionLoaded{Meta: state.Meta{Seq: second}, User: profile("new")}))
	require.True(t, s.Dispatch(ctx, state.SessionLoaded{Meta: state.Meta{Seq: first}, User: profile("old")}))

	require.Equal(t, "old", s.Snapshot().Session.Name)
}

func TestStore_StaleGuardDiscardsOlderResults(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := New(WithStaleGuard(true), WithMetrics(m))
	ctx := context.Background()

	first := s.Begin(state.SlotSession)
	second := s.Begin(state.SlotSession)

	require.True(t, s.Dispatch(ctx, state.SessionLoaded{Meta: state.Meta{Seq: second}, User: profile("new")}))
	require.False(t, s.Dispatch(ctx, state.SessionLoaded{Meta: state.Meta{Seq: first}, User: profile("old")}))

	require.Equal(t, "new", s.Snapshot().Session.Name)
	require.Equal(t, 1.0, testutil.ToFloat64(m.ActionsDiscarded.WithLabelValues("session")))
}

func TestStore_StaleGuardDropsOlderEvenIfNewerPending(t *testing.T) {
	s := New(WithStaleGuard(true))
	ctx := context.Background()

	first := s.Begin(state.SlotColleges)
	_ = s.Begin(state.SlotColleges)

	require.False(t, s.Dispatch(ctx, state.CollegesLoaded{Meta: state.Meta{Seq: first}, Colleges: []models.College{{ID: "c1"}}}))
	require.Empty(t, s.Snapshot().Colleges)
}

func TestStore_StaleGuardIsPerSlot(t *testing.T) {
	s := New(WithStaleGuard(true))
	ctx := context.Background()

	colleges := s.Begin(state.SlotColleges)
	_ = s.Begin(state.SlotUsers)

	require.True(t, s.Dispatch(ctx, state.CollegesLoaded{Meta: state.Meta{Seq: colleges}, Colleges: []models.College{{ID: "c1"}}}))
}

func TestStore_StaleGuardAppliesToFailures(t *testing.T) {
	s := New(WithStaleGuard(true))
	ctx := context.Background()

	first := s.Begin(state.SlotColleges)
	second := s.Begin(state.SlotColleges)

	require.True(t, s.Dispatch(ctx, state.CollegesLoaded{Meta: state.Meta{Seq: second}, Colleges: []models.College{{ID: "c1"}}}))
	require.False(t, s.Dispatch(ctx, state.Failed{
		Meta:    state.Meta{Seq: first},
		Slot:    state.SlotColleges,
		Domain:  state.DomainCollege,
		Failure: models.Failure{Message: "late"},
	}))
	require.Nil(t, s.Snapshot().Errors.College)
}

func TestStore_UnsequencedAlwaysApplies(t *testing.T) {
	s := New(WithStaleGuard(true))
	ctx := context.Background()
	_ = s.Begin(state.SlotProfile)

	require.True(t, s.Dispatch(ctx, state.Failed{Slot: state.SlotProfile, Domain: state.DomainDirectory}))
	require.True(t, s.Dispatch(ctx, state.CollegeSelected{ID: "c1"}))
}

func TestStore_SubscribeCoalesces(t *testing.T) {
	s := New()
	ctx := context.Background()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Dispatch(ctx, state.CollegeSelected{ID: "c1"})
	s.Dispatch(ctx, state.CollegeSelected{ID: "c2"})

	snap := <-ch
	require.Equal(t, "c2", snap.CurrentCollegeID)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected snapshot %+v", extra)
	default:
	}
}

func TestStore_CancelClosesChannel(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	require.False(t, ok)
	require.True(t, s.Dispatch(context.Background(), state.CollegeSelected{ID: "c1"}))
}

func TestStore_Close(t *testing.T) {
	s := New()
	ctx := context.Background()
	ch, cancel := s.Subscribe()

	s.Dispatch(ctx, state.AlumnusSelected{ID: "u1"})
	s.Close()
	s.Close()
	cancel()

	snap, ok := <-ch
	require.True(t, ok)
	require.Equal(t, "u1", snap.CurrentAlumnusID)
	_, ok = <-ch
	require.False(t, ok)

	require.False(t, s.Dispatch(ctx, state.AlumnusSelected{ID: "u2"}))
	require.Equal(t, "u1", s.Snapshot().CurrentAlumnusID)

	late, _ := s.Subscribe()
	_, ok = <-late
	require.False(t, ok)
}

func TestStore_ConcurrentDispatchSerializes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := New(WithMetrics(m))
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(ctx, state.Failed{
				Slot:    state.SlotUsers,
				Domain:  state.DomainDirectory,
				Failure: models.Failure{Message: fmt.Sprintf("e%d", i)},
			})
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, s.Snapshot().Errors.Directory)
	require.Equal(t, float64(n), testutil.ToFloat64(m.ActionsApplied.WithLabelValues("failed")))
}

func TestStore_LogsAppliedActionDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(WithLogger(logging.NewZapLogger(zap.New(core))))
	ctx := logging.ContextWithRequestID(context.Background(), "rid-1")

	s.Dispatch(ctx, state.AlumniLoaded{Meta: state.Meta{Seq: s.Begin(state.SlotAlumni)}, CollegeID: "c9"})
	s.Dispatch(ctx, state.NotificationsLoaded{Origin: state.OriginRequest, Notifications: models.EmptyNotifications()})

	entries := logs.FilterMessage("action applied").All()
	require.Len(t, entries, 2)

	alumni := entries[0].ContextMap()
	require.Equal(t, "alumni_loaded", alumni["action"])
	require.Equal(t, "c9", alumni["college_id"])
	require.Equal(t, "rid-1", alumni[logging.RequestIDKey])

	require.Equal(t, "request", entries[1].ContextMap()["origin"])
}
