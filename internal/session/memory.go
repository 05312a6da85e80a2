package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. It is the default
// backend and the test double; state lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, ok := s.data[sessionID]
	if !ok {
		return nil, false, nil
	}
	value, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	result := make([]byte, len(value))
	copy(result, value)
	return result, true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.data[sessionID]
	if !ok {
		values = make(map[string][]byte)
		s.data[sessionID] = values
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	values[key] = stored
	return nil
}
