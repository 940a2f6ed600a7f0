package stores

import (
	"sync"

	"carbontrack/internal/domain"
	"carbontrack/internal/eventbus"
	"carbontrack/internal/storage"
)

// Durable keys, one per settings field.
const (
	settingsDataCollectionKey    = "settings.dataCollection"
	settingsAnonymizeDataKey     = "settings.anonymizeData"
	settingsStorageLimitKey      = "settings.storageLimit"
	settingsUnitsKey             = "settings.units"
	settingsDateFormatKey        = "settings.dateFormat"
	settingsEmailDigestKey       = "settings.emailDigest"
	settingsPushNotificationsKey = "settings.pushNotifications"
)

// SettingsStore holds the user preference record. Every field has its own
// setter and its own persisted key.
type SettingsStore struct {
	mu       sync.RWMutex
	settings domain.Settings

	store *storage.Store
	queue *eventbus.Queue

	watcher
}

// NewSettingsStore loads each persisted field, falling back to the defaults.
func NewSettingsStore(store *storage.Store, queue *eventbus.Queue) *SettingsStore {
	s := &SettingsStore{
		settings: domain.DefaultSettings(),
		store:    store,
		queue:    queue,
	}
	store.Read(settingsDataCollectionKey, &s.settings.DataCollection)
	store.Read(settingsAnonymizeDataKey, &s.settings.AnonymizeData)
	store.Read(settingsStorageLimitKey, &s.settings.StorageLimit)
	store.Read(settingsUnitsKey, &s.settings.Units)
	store.Read(settingsDateFormatKey, &s.settings.DateFormat)
	store.Read(settingsEmailDigestKey, &s.settings.EmailDigest)
	store.Read(settingsPushNotificationsKey, &s.settings.PushNotifications)
	return s
}

// Settings returns a snapshot of the current preference record.
func (s *SettingsStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsStore) set(key string, value interface{}, apply func(*domain.Settings)) {
	s.mu.Lock()
	apply(&s.settings)
	s.store.Write(key, value)
	s.mu.Unlock()

	s.queue.Enqueue(domain.SettingsUpdatedEvent{Key: key, Value: value})
	s.notify()
}

func (s *SettingsStore) SetDataCollection(v bool) {
	s.set(settingsDataCollectionKey, v, func(st *domain.Settings) { st.DataCollection = v })
}

func (s *SettingsStore) SetAnonymizeData(v bool) {
	s.set(settingsAnonymizeDataKey, v, func(st *domain.Settings) { st.AnonymizeData = v })
}

func (s *SettingsStore) SetStorageLimit(v domain.StorageLimit) {
	s.set(settingsStorageLimitKey, v, func(st *domain.Settings) { st.StorageLimit = v })
}

func (s *SettingsStore) SetUnits(v domain.UnitSystem) {
	s.set(settingsUnitsKey, v, func(st *domain.Settings) { st.Units = v })
}

func (s *SettingsStore) SetDateFormat(v domain.DateFormat) {
	s.set(settingsDateFormatKey, v, func(st *domain.Settings) { st.DateFormat = v })
}

func (s *SettingsStore) SetEmailDigest(v domain.EmailDigest) {
	s.set(settingsEmailDigestKey, v, func(st *domain.Settings) { st.EmailDigest = v })
}

func (s *SettingsStore) SetPushNotifications(v bool) {
	s.set(settingsPushNotificationsKey, v, func(st *domain.Settings) { st.PushNotifications = v })
}

// ResetToDefaults rewrites every field to its default through the ordinary
// setter path, in field-declaration order. One event per field; the storage
// writes are not atomic as a group.
func (s *SettingsStore) ResetToDefaults() {
	defaults := domain.DefaultSettings()
	s.SetDataCollection(defaults.DataCollection)
	s.SetAnonymizeData(defaults.AnonymizeData)
	s.SetStorageLimit(defaults.StorageLimit)
	s.SetUnits(defaults.Units)
	s.SetDateFormat(defaults.DateFormat)
	s.SetEmailDigest(defaults.EmailDigest)
	s.SetPushNotifications(defaults.PushNotifications)
}
