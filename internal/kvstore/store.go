package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/maragym/gymlog/internal/log"
)

// DefaultPrefix namespaces every key the application writes.
const DefaultPrefix = "mara-gym/"

// Store adds a key prefix and JSON encoding on top of a Backend.
// It performs no schema validation: any well-formed JSON that decodes into
// the requested type is trusted as-is.
type Store struct {
	backend Backend
	prefix  string
}

// New creates a Store. An empty prefix falls back to DefaultPrefix.
func New(backend Backend, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{backend: backend, prefix: prefix}
}

// Key returns the namespaced backend key for key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Read decodes the JSON stored under key into a T.
//
// An absent or empty value yields fallback. A value that is not well-formed
// JSON is deleted and yields fallback. Well-formed JSON that does not fit T
// also yields fallback but is left in place. Only backend failures are
// returned as errors.
func Read[T any](s *Store, key string, fallback T) (T, error) {
	raw, ok, err := s.backend.Get(s.Key(key))
	if err != nil {
		return fallback, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return fallback, nil
	}

	if !json.Valid([]byte(raw)) {
		log.Warn(log.CatStore, "could not parse stored value, resetting key", "key", s.Key(key))
		if err := s.Remove(key); err != nil {
			return fallback, err
		}
		return fallback, nil
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Warn(log.CatStore, "stored value has unexpected shape, using fallback", "key", s.Key(key), "error", err)
		return fallback, nil
	}
	return value, nil
}

// ReadList decodes the JSON array stored under key one element at a time.
//
// Absent, empty and corrupt values behave as in Read. A well-formed value
// that is not an array yields an empty list and is left in place. An element
// that does not fit T is skipped with a warning; its siblings are kept.
func ReadList[T any](s *Store, key string) ([]T, error) {
	raw, err := Read(s, key, []json.RawMessage(nil))
	if err != nil {
		return []T{}, err
	}
	list := make([]T, 0, len(raw))
	for i, elem := range raw {
		var value T
		if err := json.Unmarshal(elem, &value); err != nil {
			log.Warn(log.CatStore, "skipping stored element with unexpected shape",
				"key", s.Key(key), "index", i, "error", err)
			continue
		}
		list = append(list, value)
	}
	return list, nil
}

// Write encodes value as JSON and stores it under key.
func (s *Store) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.backend.Set(s.Key(key), string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	log.Debug(log.CatStore, "wrote key", "key", s.Key(key), "bytes", len(data))
	return nil
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	if err := s.backend.Remove(s.Key(key)); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
