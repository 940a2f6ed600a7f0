package stores

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

type fixture struct {
	bus   eventbus.Bus
	queue *eventbus.Queue
	store *storage.Store
	path  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := eventbus.New(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "store.json")
	return &fixture{
		bus:   bus,
		queue: eventbus.NewQueue(bus),
		store: storage.Open(path, zerolog.Nop()),
		path:  path,
	}
}

func TestAddAssignsIDAndReturnsRecord(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	got := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "car", Quantity: 10})

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "car", got.TypeID)

	activities := s.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, got, activities[0])
}

func TestAddEventIsDeferredUntilDrain(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	var events []domain.ActivityAddedEvent
	f.bus.Subscribe(domain.EventActivityAdded, func(e eventbus.Event) {
		events = append(events, e.(domain.ActivityAddedEvent))
	})

	added := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "bus", Quantity: 4})

	// The caller sees the new state immediately, the subscriber does not.
	require.Len(t, s.Activities(), 1)
	assert.Empty(t, events)

	f.queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, added, events[0].Activity, "created event carries the full record including the generated id")
}

func TestCollectionSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)
	added := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "train", Quantity: 25})

	reopened := NewActivityStore(storage.Open(f.path, zerolog.Nop()), f.queue)
	activities := reopened.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, added, activities[0])
}

func TestUpdateReplacesByID(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)
	added := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "car", Quantity: 10})

	added.Quantity = 20
	added.Notes = "round trip"
	s.Update(added)

	got, ok := s.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, 20.0, got.Quantity)
	assert.Equal(t, "round trip", got.Notes)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)
	s.Add(domain.Activity{Date: "2026-08-30", TypeID: "car", Quantity: 10})

	before := s.Activities()
	s.Update(domain.Activity{ID: "missing", TypeID: "bus", Quantity: 1})
	assert.Equal(t, before, s.Activities())
}

func TestDeleteIsIdempotentOnAbsence(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)
	added := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "car", Quantity: 10})

	var deleted []domain.ActivityDeletedEvent
	f.bus.Subscribe(domain.EventActivityDeleted, func(e eventbus.Event) {
		deleted = append(deleted, e.(domain.ActivityDeletedEvent))
	})

	s.Delete(added.ID)
	assert.Empty(t, s.Activities())

	require.NotPanics(t, func() { s.Delete(added.ID) })
	assert.Empty(t, s.Activities())

	f.queue.Drain()
	require.Len(t, deleted, 2)
	assert.Equal(t, added.ID, deleted[0].ID, "deletion event carries only the id")
}

func TestCarbonFootprintFromCatalog(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	got := s.CarbonFootprint(domain.Activity{TypeID: "car", Quantity: 10})
	assert.InDelta(t, 4.04, got, 1e-9)
}

func TestCarbonFootprintCustomActivity(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	got := s.CarbonFootprint(domain.Activity{
		IsCustom:            true,
		CustomCarbonPerUnit: 2.5,
		Quantity:            3,
	})
	assert.InDelta(t, 7.5, got, 1e-9)
}

func TestCarbonFootprintUnknownTypeIsZero(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	assert.Zero(t, s.CarbonFootprint(domain.Activity{TypeID: "nonexistent", Quantity: 100}))
}

func TestCarbonFootprintNegativeFactorSubtracts(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	got := s.CarbonFootprint(domain.Activity{TypeID: "recycling_metal", Quantity: 10})
	assert.InDelta(t, -3.0, got, 1e-9)
}

func TestTotalFootprintWeekBoundaryIsInclusive(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	onBoundary := now.AddDate(0, 0, -7).Format(time.RFC3339)
	beyond := now.AddDate(0, 0, -8).Format(time.RFC3339)

	s.Add(domain.Activity{Date: onBoundary, TypeID: "car", Quantity: 10}) // 4.04
	s.Add(domain.Activity{Date: beyond, TypeID: "car", Quantity: 100})    // excluded

	assert.InDelta(t, 4.04, s.TotalFootprint(PeriodWeek), 1e-9)
}

func TestTotalFootprintPeriods(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Add(domain.Activity{Date: now.Add(-2 * time.Hour).Format(time.RFC3339), TypeID: "veg_meal", Quantity: 1})  // 2.5, today
	s.Add(domain.Activity{Date: now.AddDate(0, 0, -3).Format(time.RFC3339), TypeID: "chicken", Quantity: 1})     // 6.9, this week
	s.Add(domain.Activity{Date: now.AddDate(0, 0, -20).Format(time.RFC3339), TypeID: "beef", Quantity: 1})       // 27, this month
	s.Add(domain.Activity{Date: now.AddDate(0, -2, 0).Format(time.RFC3339), TypeID: "electricity", Quantity: 2}) // 0.91, older

	assert.InDelta(t, 2.5, s.TotalFootprint(PeriodDay), 1e-9)
	assert.InDelta(t, 9.4, s.TotalFootprint(PeriodWeek), 1e-9)
	assert.InDelta(t, 36.4, s.TotalFootprint(PeriodMonth), 1e-9)
	assert.InDelta(t, 37.31, s.TotalFootprint(PeriodAll), 1e-9)
}

func TestTotalFootprintMayGoNegative(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	s.Add(domain.Activity{Date: "2026-08-30", TypeID: "recycling_plastic", Quantity: 20}) // -5
	s.Add(domain.Activity{Date: "2026-08-30", TypeID: "veg_meal", Quantity: 1})           // 2.5

	assert.InDelta(t, -2.5, s.TotalFootprint(PeriodAll), 1e-9)
}

func TestTotalFootprintSkipsUnparseableDatesInPeriods(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	s.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	s.Add(domain.Activity{Date: "not-a-date", TypeID: "car", Quantity: 10})

	assert.Zero(t, s.TotalFootprint(PeriodWeek))
	assert.InDelta(t, 4.04, s.TotalFootprint(PeriodAll), 1e-9, "'all' does not filter by date")
}

func TestActivitiesOnMatchesCalendarDay(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	a1 := s.Add(domain.Activity{Date: "2026-08-30T08:00:00Z", TypeID: "car", Quantity: 1})
	a2 := s.Add(domain.Activity{Date: "2026-08-30T21:15:00Z", TypeID: "bus", Quantity: 2})
	s.Add(domain.Activity{Date: "2026-08-29T23:59:00Z", TypeID: "car", Quantity: 3})

	got := s.ActivitiesOn("2026-08-30")
	require.Len(t, got, 2)
	assert.Equal(t, a1.ID, got[0].ID, "collection order, not sorted")
	assert.Equal(t, a2.ID, got[1].ID)

	assert.Empty(t, s.ActivitiesOn("2026-08-28"))
}

func TestNegativeQuantityInvertsSign(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	// The store accepts a negative quantity; the contribution just flips.
	got := s.CarbonFootprint(domain.Activity{TypeID: "car", Quantity: -10})
	assert.InDelta(t, -4.04, got, 1e-9)
}

func TestWatchFiresOnEveryMutation(t *testing.T) {
	f := newFixture(t)
	s := NewActivityStore(f.store, f.queue)

	changes := 0
	s.Watch(func() { changes++ })

	a := s.Add(domain.Activity{Date: "2026-08-30", TypeID: "car", Quantity: 1})
	s.Update(a)
	s.Delete(a.ID)

	assert.Equal(t, 3, changes)
}
