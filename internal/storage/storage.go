// Package storage binds logical values to durable keys, mirroring each value
// in memory so reads are synchronous after open. The whole key space persists
// as a single JSON document, one JSON value per key; key names and value
// shapes are the migration contract with previously stored data.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the durable key-value adapter. Failures to load or persist are
// logged, never returned: the in-memory mirror always advances, degrading to
// session-only persistence when the disk rejects a write.
type Store struct {
	path string
	log  zerolog.Logger

	mu       sync.RWMutex
	values   map[string]json.RawMessage
	watchers []func(key string)
}

// Open loads the document at path, or starts empty if it is absent or
// corrupt.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{
		path:   path,
		log:    log.With().Str("component", "storage").Logger(),
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", path).Msg("could not read store file")
		}
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("store file is corrupt, starting empty")
		s.values = make(map[string]json.RawMessage)
	}
	return s
}

// DefaultPath returns the store file location under the user config
// directory, falling back to ~/.config and finally the working directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			configDir = "."
		} else {
			configDir = filepath.Join(home, ".config")
		}
	}
	dir := filepath.Join(configDir, "carbontrack")
	os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "store.json")
}

// Read deserializes the value stored under key into out. It returns false if
// the key is absent or the stored value does not deserialize (logged); the
// caller keeps its fallback in that case.
func (s *Store) Read(key string, out interface{}) bool {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("stored value is corrupt, using fallback")
		return false
	}
	return true
}

// Write serializes value under key and persists the document. The in-memory
// mirror is updated even when persisting fails, so the running session sees
// the new value either way.
func (s *Store) Write(key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("value is not serializable")
		return
	}

	s.mu.Lock()
	s.values[key] = raw
	data, marshalErr := json.MarshalIndent(s.values, "", "  ")
	watchers := make([]func(string), len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.Unlock()

	if marshalErr != nil {
		s.log.Error().Err(marshalErr).Msg("could not marshal store document")
	} else if err := s.persist(data); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("could not persist store, value kept in memory")
	}

	for _, w := range watchers {
		w(key)
	}
}

// Watch registers a callback invoked with the key after every write. It is
// how reactive consumers learn about changes without coupling persistence to
// any particular rendering layer.
func (s *Store) Watch(fn func(key string)) {
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

func (s *Store) persist(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
