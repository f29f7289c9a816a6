package memory

import (
	"sync"

	"driving-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.Practice
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.Practice),
	}
}

func (s *SessionStore) GetOrCreate(playerID string, create func() *app.Practice) *app.Practice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if practice, ok := s.sessions[playerID]; ok {
		return practice
	}
	practice := create()
	s.sessions[playerID] = practice
	return practice
}

func (s *SessionStore) Get(playerID string) (*app.Practice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	practice, ok := s.sessions[playerID]
	return practice, ok
}

func (s *SessionStore) Delete(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, playerID)
}

// Len reports how many players currently hold a session.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
