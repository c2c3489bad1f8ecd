package storage

import (
	"sync"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// QuizStorage provides in-memory storage for quiz sessions by session ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.QuizSession
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]*entities.QuizSession),
	}
}

// Store saves a session under its ID, replacing any previous one.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
}

// Get retrieves the session with the given ID.
func (s *QuizStorage) Get(id string) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Delete removes the session with the given ID.
func (s *QuizStorage) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
