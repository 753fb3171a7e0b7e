package store

import "sync"

// MemoryStore provides thread-safe in-memory storage. Suitable for tests
// and single-process hosts; state does not survive a restart.
type MemoryStore struct {
	values sync.Map // map[string]string
}

// Ensure MemoryStore implements Store interface
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves the value for a given key
func (s *MemoryStore) Get(key string) (string, bool) {
	val, ok := s.values.Load(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

// Set stores the value for a given key
func (s *MemoryStore) Set(key, value string) {
	s.values.Store(key, value)
}

// Delete removes the value for a given key
func (s *MemoryStore) Delete(key string) {
	s.values.Delete(key)
}

// Clear removes all values
func (s *MemoryStore) Clear() {
	s.values.Range(func(key, value interface{}) bool {
		s.values.Delete(key)
		return true
	})
}
