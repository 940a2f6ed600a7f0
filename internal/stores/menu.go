package stores

import (
	"sync"

	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

const menuCollapsedKey = "menuCollapsed"

// MenuStore holds the collapsed-menu flag.
type MenuStore struct {
	mu        sync.RWMutex
	collapsed bool

	store *storage.Store
	queue *eventbus.Queue

	watcher
}

// NewMenuStore loads the persisted flag, defaulting to expanded.
func NewMenuStore(store *storage.Store, queue *eventbus.Queue) *MenuStore {
	s := &MenuStore{
		store: store,
		queue: queue,
	}
	store.Read(menuCollapsedKey, &s.collapsed)
	return s
}

// Collapsed reports whether the menu is collapsed.
func (s *MenuStore) Collapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapsed
}

// ToggleCollapse flips the flag, persists it and enqueues a toggle event
// carrying the new value.
func (s *MenuStore) ToggleCollapse() {
	s.mu.Lock()
	s.collapsed = !s.collapsed
	collapsed := s.collapsed
	s.store.Write(menuCollapsedKey, collapsed)
	s.mu.Unlock()

	s.queue.Enqueue(domain.MenuToggledEvent{Collapsed: collapsed})
	s.notify()
}
