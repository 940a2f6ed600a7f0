package ui

import (
	"carbontrack/internal/dataset"
	"carbontrack/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the bus into the program.
type EventMsg struct {
	Event eventbus.Event
}

// StoreChangedMsg tells the model to refresh its snapshots after a store
// listener fired.
type StoreChangedMsg struct{}

// countriesLoadedMsg carries the available analytics countries.
type countriesLoadedMsg struct {
	countries []string
	err       error
}

// seriesLoadedMsg carries one country's emissions time series.
type seriesLoadedMsg struct {
	country string
	data    []dataset.EmissionsData
	err     error
}

// pagerClosedMsg is sent when the external log pager exits.
type pagerClosedMsg struct {
	err error
}
