// Package stores contains the state containers. Each store exclusively owns
// its slice of application state, persists through the storage adapter and
// enqueues a domain event on every mutation. Consumers get snapshot copies
// and mutate only through store methods.
package stores

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"carbontrack/internal/catalog"
	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

const activitiesKey = "activities"

// Period selects the time window for footprint totals.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ActivityStore is the authoritative collection of logged activities.
// It performs no validation at write time; malformed records are the
// submitting layer's problem.
type ActivityStore struct {
	mu         sync.RWMutex
	activities []domain.Activity

	store *storage.Store
	queue *eventbus.Queue
	now   func() time.Time

	watcher
}

// NewActivityStore loads the persisted collection and returns the store.
func NewActivityStore(store *storage.Store, queue *eventbus.Queue) *ActivityStore {
	s := &ActivityStore{
		store: store,
		queue: queue,
		now:   time.Now,
	}
	var activities []domain.Activity
	if store.Read(activitiesKey, &activities) {
		s.activities = activities
	}
	return s
}

// Add assigns an id to the activity, appends it, persists the collection and
// enqueues the created event. The new record is returned synchronously; the
// event reaches subscribers only after the next queue drain.
func (s *ActivityStore) Add(activity domain.Activity) domain.Activity {
	activity.ID = uuid.NewString()

	s.mu.Lock()
	s.activities = append(s.activities, activity)
	s.persistLocked()
	s.mu.Unlock()

	s.queue.Enqueue(domain.ActivityAddedEvent{Activity: activity})
	s.notify()
	return activity
}

// Update replaces the record with a matching id. No-op if the id is unknown.
func (s *ActivityStore) Update(activity domain.Activity) {
	s.mu.Lock()
	replaced := false
	for i, a := range s.activities {
		if a.ID == activity.ID {
			s.activities[i] = activity
			replaced = true
			break
		}
	}
	if replaced {
		s.persistLocked()
	}
	s.mu.Unlock()

	s.queue.Enqueue(domain.ActivityUpdatedEvent{Activity: activity})
	s.notify()
}

// Delete removes the record with the given id. Deleting an absent id leaves
// the collection unchanged.
func (s *ActivityStore) Delete(id string) {
	s.mu.Lock()
	removed := false
	for i, a := range s.activities {
		if a.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		s.persistLocked()
	}
	s.mu.Unlock()

	s.queue.Enqueue(domain.ActivityDeletedEvent{ID: id})
	s.notify()
}

// Activities returns a snapshot copy of the collection in insertion order.
func (s *ActivityStore) Activities() []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Get returns the activity with the given id.
func (s *ActivityStore) Get(id string) (domain.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Activity{}, false
}

// CarbonFootprint computes the kg CO2e attributable to one activity. An
// unknown type id counts as zero impact; that is documented policy, not an
// error. A negative quantity simply inverts the sign contribution.
func (s *ActivityStore) CarbonFootprint(a domain.Activity) float64 {
	if a.IsCustom && a.CustomCarbonPerUnit != 0 {
		return a.CustomCarbonPerUnit * a.Quantity
	}
	t, ok := catalog.Lookup(a.TypeID)
	if !ok {
		return 0
	}
	return t.CarbonPerUnit * a.Quantity
}

// TotalFootprint sums footprints over the period ending now. The lower bound
// is inclusive. Recycling credits subtract, so the total may be negative.
func (s *ActivityStore) TotalFootprint(period Period) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if period == PeriodAll {
		total := 0.0
		for _, a := range s.activities {
			total += s.CarbonFootprint(a)
		}
		return total
	}

	now := s.now()
	var cutoff time.Time
	switch period {
	case PeriodDay:
		cutoff = now.AddDate(0, 0, -1)
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return 0
	}

	total := 0.0
	for _, a := range s.activities {
		t, ok := parseActivityDate(a.Date)
		if !ok || t.Before(cutoff) {
			continue
		}
		total += s.CarbonFootprint(a)
	}
	return total
}

// ActivitiesOn returns the activities logged on the given calendar day
// (YYYY-MM-DD, or any date string with that prefix), in collection order.
func (s *ActivityStore) ActivitiesOn(date string) []domain.Activity {
	day := truncateToDay(date)

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Activity
	for _, a := range s.activities {
		if truncateToDay(a.Date) == day {
			out = append(out, a)
		}
	}
	return out
}

func (s *ActivityStore) persistLocked() {
	s.store.Write(activitiesKey, s.activities)
}

func truncateToDay(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// parseActivityDate accepts the date layouts the app has historically stored.
func parseActivityDate(date string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
