package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore backs tests and single-node development runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
	}
}

func (s *MemoryStore) Save(
	_ context.Context,
	sid string,
	userID uint,
	ttl time.Duration,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sid] = memorySession{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) UserID(
	_ context.Context,
	sid string,
) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return 0, false, nil
	}
	return sess.userID, true, nil
}

func (s *MemoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}

// Compile-time check
var _ Store = (*MemoryStore)(nil)
