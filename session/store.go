package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session is the explicit session context threaded through the
// purchase pipeline: the identity reference issued by the auth
// provider and the login timestamp used for expiry.
type Session struct {
	SessionID string
	UserID    string
	LoggedIn  time.Time
}

// Expired reports whether the login is older than ttl at now.
func (s Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LoggedIn) > ttl
}

// Store holds active sessions in memory, one checkout pipeline each.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a session for a verified identity and returns it.
func (s *Store) Create(userID string) Session {
	sess := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		LoggedIn:  s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.SessionID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session for id, enforcing expiry. An expired session
// is removed so the client is routed back to sign-in.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	if sess.Expired(s.now(), s.ttl) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return Session{}, ErrExpired
	}
	return sess, nil
}

// Delete removes a session (sign-out).
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
