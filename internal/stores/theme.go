package stores

import (
	"sync"

	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

const (
	themeKey       = "theme"
	colorSchemeKey = "colorScheme"
)

// ThemeStore holds the theme mode and color scheme. Applying the palette to
// the screen is the UI's business; the store only owns the state.
type ThemeStore struct {
	mu         sync.RWMutex
	mode       domain.ThemeMode
	scheme     domain.ColorScheme
	systemMode domain.ThemeMode // resolved host preference, light or dark

	store *storage.Store
	queue *eventbus.Queue

	watcher
}

// NewThemeStore loads persisted theme state, defaulting to system mode with
// the blue scheme.
func NewThemeStore(store *storage.Store, queue *eventbus.Queue) *ThemeStore {
	s := &ThemeStore{
		mode:       domain.ThemeSystem,
		scheme:     domain.SchemeBlue,
		systemMode: domain.ThemeLight,
		store:      store,
		queue:      queue,
	}
	store.Read(themeKey, &s.mode)
	store.Read(colorSchemeKey, &s.scheme)
	return s
}

// Mode returns the configured theme mode.
func (s *ThemeStore) Mode() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Scheme returns the configured color scheme.
func (s *ThemeStore) Scheme() domain.ColorScheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheme
}

// Resolved returns the effective light/dark mode, resolving system mode
// against the host preference.
func (s *ThemeStore) Resolved() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mode == domain.ThemeSystem {
		return s.systemMode
	}
	return s.mode
}

// SetMode sets the theme mode, persists it and enqueues a theme change event.
func (s *ThemeStore) SetMode(mode domain.ThemeMode) {
	s.mu.Lock()
	s.mode = mode
	s.store.Write(themeKey, mode)
	s.mu.Unlock()

	s.queue.Enqueue(domain.ThemeChangedEvent{Theme: mode})
	s.notify()
}

// SetScheme sets the color scheme. The original app reported this as a
// settings update keyed by the scheme's storage key, which is kept.
func (s *ThemeStore) SetScheme(scheme domain.ColorScheme) {
	s.mu.Lock()
	s.scheme = scheme
	s.store.Write(colorSchemeKey, scheme)
	s.mu.Unlock()

	s.queue.Enqueue(domain.SettingsUpdatedEvent{Key: colorSchemeKey, Value: scheme})
	s.notify()
}

// ToggleMode flips between light and dark. From system mode it flips away
// from the resolved host preference.
func (s *ThemeStore) ToggleMode() {
	s.mu.RLock()
	mode, system := s.mode, s.systemMode
	s.mu.RUnlock()

	var next domain.ThemeMode
	switch {
	case mode == domain.ThemeLight:
		next = domain.ThemeDark
	case mode == domain.ThemeDark:
		next = domain.ThemeLight
	case system == domain.ThemeLight:
		next = domain.ThemeDark
	default:
		next = domain.ThemeLight
	}
	s.SetMode(next)
}

// SetSystemMode records the host's light/dark preference. It is not
// persisted; the host reports it on every start.
func (s *ThemeStore) SetSystemMode(mode domain.ThemeMode) {
	s.mu.Lock()
	s.systemMode = mode
	s.mu.Unlock()
	s.notify()
}
