package stores

import "sync"

// watcher is the state-change listener list shared by the stores. It serves
// reactive consumers (the UI refreshing its snapshot) and is deliberately
// separate from the domain event bus, which carries cross-feature
// notifications.
type watcher struct {
	wmu       sync.Mutex
	listeners []func()
}

// Watch registers a listener invoked after every state change.
func (w *watcher) Watch(fn func()) {
	w.wmu.Lock()
	w.listeners = append(w.listeners, fn)
	w.wmu.Unlock()
}

func (w *watcher) notify() {
	w.wmu.Lock()
	listeners := make([]func(), len(w.listeners))
	copy(listeners, w.listeners)
	w.wmu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
