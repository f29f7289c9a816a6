package redis

import (
	"context"
	"sync"
	"time"

	"driving-quiz-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Practice sessions stay in a local map; a WebSocket connection is pinned to one instance.
//   - Redis only marks which players hold a live session, with a TTL, so operators can see
//     active players across instances.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Practice
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Practice),
	}
}

func (s *SessionStore) GetOrCreate(playerID string, create func() *app.Practice) *app.Practice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if practice, ok := s.sessions[playerID]; ok {
		s.touch(playerID)
		return practice
	}
	practice := create()
	s.sessions[playerID] = practice
	s.touch(playerID)
	return practice
}

// Get returns the local practice. Every operation on a session goes through Get, so it also
// keeps the liveness marker fresh while the player is active.
func (s *SessionStore) Get(playerID string) (*app.Practice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	practice, ok := s.sessions[playerID]
	if ok {
		s.touch(playerID)
	}
	return practice, ok
}

func (s *SessionStore) Delete(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[playerID]; !ok {
		return
	}
	delete(s.sessions, playerID)
	_ = s.client.Del(context.Background(), SessionKey(playerID)).Err()
}

// touch refreshes the best-effort liveness marker.
func (s *SessionStore) touch(playerID string) {
	_ = s.client.Set(context.Background(), SessionKey(playerID), "1", s.ttl).Err()
}

func SessionKey(playerID string) string {
	return "quiz:session:" + playerID
}
