package domain

// EventType names a domain event on the bus. The string values are the
// original application's event names and are part of the external contract.
type EventType string

// Event types
const (
	EventActivityAdded   EventType = "activity:added"
	EventActivityUpdated EventType = "activity:updated"
	EventActivityDeleted EventType = "activity:deleted"
	EventThemeChanged    EventType = "theme:changed"
	EventSettingsUpdated EventType = "settings:updated"
	EventMenuToggled     EventType = "menu:toggled"
	EventDateSelected    EventType = "date:selected"
	EventPageChanged     EventType = "navigation:page_changed"
)

// Event is the interface for all domain events
type Event interface {
	Type() EventType
}

// ActivityAddedEvent is emitted after a new activity has been stored. It
// carries the full record including the generated id.
type ActivityAddedEvent struct {
	Activity Activity
}

func (e ActivityAddedEvent) Type() EventType { return EventActivityAdded }

// ActivityUpdatedEvent is emitted after an existing activity is replaced.
type ActivityUpdatedEvent struct {
	Activity Activity
}

func (e ActivityUpdatedEvent) Type() EventType { return EventActivityUpdated }

// ActivityDeletedEvent is emitted after an activity is removed. Only the id
// survives the deletion.
type ActivityDeletedEvent struct {
	ID string
}

func (e ActivityDeletedEvent) Type() EventType { return EventActivityDeleted }

// ThemeChangedEvent is emitted when the theme mode changes.
type ThemeChangedEvent struct {
	Theme ThemeMode
}

func (e ThemeChangedEvent) Type() EventType { return EventThemeChanged }

// SettingsUpdatedEvent is emitted when a single settings field changes.
// Key is the durable storage key of the field.
type SettingsUpdatedEvent struct {
	Key   string
	Value interface{}
}

func (e SettingsUpdatedEvent) Type() EventType { return EventSettingsUpdated }

// MenuToggledEvent is emitted when the navigation menu is collapsed or
// expanded.
type MenuToggledEvent struct {
	Collapsed bool
}

func (e MenuToggledEvent) Type() EventType { return EventMenuToggled }

// DateSelectedEvent is emitted when the user picks a day to inspect.
type DateSelectedEvent struct {
	Date string // YYYY-MM-DD
}

func (e DateSelectedEvent) Type() EventType { return EventDateSelected }

// PageChangedEvent is emitted when the visible page changes.
type PageChangedEvent struct {
	Page  string
	Title string
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }
