package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for local development (no Redis
// configured) and for tests. State does not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[sessionKey(sessionID, key)]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionKey(sessionID, key)] = value
	return nil
}

func (s *MemoryStore) SetNX(_ context.Context, sessionID, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := sessionKey(sessionID, key)
	if _, ok := s.data[k]; ok {
		return false, nil
	}
	s.data[k] = value
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, sessionKey(sessionID, k))
	}
	return nil
}
