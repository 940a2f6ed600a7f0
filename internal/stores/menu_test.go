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

func TestToggleCollapseFlipsPersistsAndEmits(t *testing.T) {
	f := newFixture(t)
	s := NewMenuStore(f.store, f.queue)
	require.False(t, s.Collapsed())

	var events []domain.MenuToggledEvent
	f.bus.Subscribe(domain.EventMenuToggled, func(e eventbus.Event) {
		events = append(events, e.(domain.MenuToggledEvent))
	})

	s.ToggleCollapse()
	assert.True(t, s.Collapsed())

	s.ToggleCollapse()
	assert.False(t, s.Collapsed())

	f.queue.Drain()
	require.Len(t, events, 2)
	assert.True(t, events[0].Collapsed)
	assert.False(t, events[1].Collapsed)
}

func TestMenuStateSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	s := NewMenuStore(f.store, f.queue)
	s.ToggleCollapse()

	reopened := NewMenuStore(storage.Open(f.path, zerolog.Nop()), f.queue)
	assert.True(t, reopened.Collapsed())
}
