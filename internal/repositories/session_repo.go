package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session has the requested ID.
var ErrSessionNotFound = errors.New("session not found")

type sessionEntry[T any] struct {
	session  T
	lastUsed time.Time
}

// SessionRepository keeps per-visitor page sessions in memory. Every lookup
// refreshes the session's last use, which Expire measures idleness against.
type SessionRepository[T any] struct {
	sessions map[string]*sessionEntry[T]
	now      func() time.Time
	mu       sync.RWMutex
}

// SessionOption configures a SessionRepository.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	now func() time.Time
}

// WithSessionClock overrides the clock used to track last use.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(o *sessionOptions) { o.now = now }
}

// NewSessionRepository creates an empty session repository.
func NewSessionRepository[T any](opts ...SessionOption) *SessionRepository[T] {
	o := sessionOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &SessionRepository[T]{
		sessions: make(map[string]*sessionEntry[T]),
		now:      o.now,
	}
}

// Create stores session under a new ID and returns the ID.
func (r *SessionRepository[T]) Create(session T) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	r.sessions[id] = &sessionEntry[T]{session: session, lastUsed: r.now()}
	return id
}

// GetByID returns the session stored under id and marks it used.
func (r *SessionRepository[T]) GetByID(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	entry.lastUsed = r.now()
	return entry.session, nil
}

// Delete removes the session stored under id and returns it.
func (r *SessionRepository[T]) Delete(id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return entry.session, nil
}

// Expire removes every session unused for longer than maxIdle and returns them.
func (r *SessionRepository[T]) Expire(maxIdle time.Duration) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	var expired []T
	for id, entry := range r.sessions {
		if entry.lastUsed.Before(cutoff) {
			expired = append(expired, entry.session)
			delete(r.sessions, id)
		}
	}
	return expired
}

// Len returns the number of stored sessions.
func (r *SessionRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
