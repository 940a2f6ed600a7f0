package stores

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

func TestThemeDefaults(t *testing.T) {
	f := newFixture(t)
	s := NewThemeStore(f.store, f.queue)

	assert.Equal(t, domain.ThemeSystem, s.Mode())
	assert.Equal(t, domain.SchemeBlue, s.Scheme())
	assert.Equal(t, domain.ThemeLight, s.Resolved())
}

func TestSetModePersistsAndEmits(t *testing.T) {
	f := newFixture(t)
	s := NewThemeStore(f.store, f.queue)

	var events []domain.ThemeChangedEvent
	f.bus.Subscribe(domain.EventThemeChanged, func(e eventbus.Event) {
		events = append(events, e.(domain.ThemeChangedEvent))
	})

	s.SetMode(domain.ThemeDark)
	f.queue.Drain()

	require.Len(t, events, 1)
	assert.Equal(t, domain.ThemeDark, events[0].Theme)

	reopened := NewThemeStore(storage.Open(f.path, zerolog.Nop()), f.queue)
	assert.Equal(t, domain.ThemeDark, reopened.Mode())
}

func TestSetSchemeEmitsSettingsUpdate(t *testing.T) {
	f := newFixture(t)
	s := NewThemeStore(f.store, f.queue)

	var events []domain.SettingsUpdatedEvent
	f.bus.Subscribe(domain.EventSettingsUpdated, func(e eventbus.Event) {
		events = append(events, e.(domain.SettingsUpdatedEvent))
	})

	s.SetScheme(domain.SchemePurple)
	f.queue.Drain()

	require.Len(t, events, 1)
	assert.Equal(t, "colorScheme", events[0].Key)
	assert.Equal(t, domain.SchemePurple, events[0].Value)
}

func TestToggleMode(t *testing.T) {
	f := newFixture(t)
	s := NewThemeStore(f.store, f.queue)

	// From system mode, toggling flips away from the host preference.
	s.SetSystemMode(domain.ThemeLight)
	s.ToggleMode()
	assert.Equal(t, domain.ThemeDark, s.Mode())

	s.ToggleMode()
	assert.Equal(t, domain.ThemeLight, s.Mode())

	s.ToggleMode()
	assert.Equal(t, domain.ThemeDark, s.Mode())
}

func TestResolvedFollowsSystemPreference(t *testing.T) {
	f := newFixture(t)
	s := NewThemeStore(f.store, f.queue)

	s.SetSystemMode(domain.ThemeDark)
	assert.Equal(t, domain.ThemeDark, s.Resolved())

	s.SetMode(domain.ThemeLight)
	assert.Equal(t, domain.ThemeLight, s.Resolved(), "explicit mode wins over the host preference")
}
