package eventbus

import (
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"carbontrack/internal/domain"
)

// Re-export domain types for convenience
type Event = domain.Event
type EventType = domain.EventType

// Handler is a function that handles domain events
type Handler func(Event)

// Bus is the interface for the event bus
type Bus interface {
	Publish(event Event)
	Subscribe(eventType EventType, handler Handler) func()
	SubscribeOnce(eventType EventType, handler Handler) func()
	Unsubscribe(eventType EventType, handler Handler)
}

// subscription is one registration of a handler. The same handler subscribed
// twice yields two independent subscriptions.
type subscription struct {
	handler Handler
	once    bool
}

// bus is the concrete implementation of Bus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]*subscription
	log      zerolog.Logger
}

// New creates a new event bus
func New(log zerolog.Logger) Bus {
	return &bus{
		handlers: make(map[EventType][]*subscription),
		log:      log.With().Str("component", "eventbus").Logger(),
	}
}

// Subscribe registers a handler for an event type and returns a function
// that removes exactly this registration.
func (b *bus) Subscribe(eventType EventType, handler Handler) func() {
	return b.add(eventType, handler, false)
}

// SubscribeOnce registers a handler that is delivered to at most once.
// The registration is removed before the handler body runs, so a handler
// that publishes the same event cannot re-enter itself.
func (b *bus) SubscribeOnce(eventType EventType, handler Handler) func() {
	return b.add(eventType, handler, true)
}

func (b *bus) add(eventType EventType, handler Handler, once bool) func() {
	sub := &subscription{handler: handler, once: once}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], sub)
	b.mu.Unlock()

	return func() { b.remove(eventType, sub) }
}

// Unsubscribe removes the first registration whose handler matches the given
// function. No-op if no registration matches.
func (b *bus) Unsubscribe(eventType EventType, handler Handler) {
	target := reflect.ValueOf(handler).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if reflect.ValueOf(s.handler).Pointer() == target {
			b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (b *bus) remove(eventType EventType, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s == sub {
			b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish synchronously invokes every currently-registered handler for the
// event's type, in subscription order. A panicking handler is logged and does
// not prevent delivery to the remaining handlers; publishing with no
// subscribers is a no-op.
func (b *bus) Publish(event Event) {
	b.mu.Lock()
	subs := b.handlers[event.Type()]
	// Copy so handlers registered or removed during delivery don't affect
	// this publish call.
	subsCopy := make([]*subscription, len(subs))
	copy(subsCopy, subs)

	// Once-handlers are deregistered before they run.
	remaining := subs[:0]
	for _, s := range subs {
		if !s.once {
			remaining = append(remaining, s)
		}
	}
	b.handlers[event.Type()] = remaining
	b.mu.Unlock()

	for _, s := range subsCopy {
		b.invoke(s.handler, event)
	}
}

func (b *bus) invoke(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("event handler panicked")
		}
	}()
	h(event)
}
