package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/kanji-cards/internal/repository"
)

// StateStorage keeps serialized app states in memory and loses everything on restart.
type StateStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewStateStorage() *StateStorage {
	return &StateStorage{
		values: make(map[string][]byte),
	}
}

func (s *StateStorage) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *StateStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, repository.ErrStateNotFound
	}
	return append([]byte(nil), value...), nil
}

// SaveMany stores all values under a single lock.
func (s *StateStorage) SaveMany(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = append([]byte(nil), value...)
	}
	return nil
}
