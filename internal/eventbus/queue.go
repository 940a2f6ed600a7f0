package eventbus

import (
	"context"
	"sync"
)

// Queue defers event delivery. Store mutations enqueue their events instead
// of publishing inline, so a caller that reads store state right after a
// mutation has returned is never racing its own subscribers; delivery happens
// on the next drain. Events drain in enqueue order and a commit cannot be
// taken back.
type Queue struct {
	bus Bus

	mu      sync.Mutex
	pending []Event
	wake    chan struct{}
}

// NewQueue creates a queue that delivers through the given bus.
func NewQueue(bus Bus) *Queue {
	return &Queue{
		bus:  bus,
		wake: make(chan struct{}, 1),
	}
}

// Enqueue appends an event for later delivery.
func (q *Queue) Enqueue(event Event) {
	q.mu.Lock()
	q.pending = append(q.pending, event)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain publishes every queued event in enqueue order and returns how many
// were delivered. Events enqueued by handlers during the drain are delivered
// in the same pass.
func (q *Queue) Drain() int {
	delivered := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return delivered
		}
		event := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.bus.Publish(event)
		delivered++
	}
}

// Run drains whenever events arrive, until the context is cancelled.
// A final drain flushes anything enqueued before cancellation.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-q.wake:
			q.Drain()
		case <-ctx.Done():
			q.Drain()
			return
		}
	}
}
