package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"orderdesk/internal/orderform"
	"orderdesk/internal/repositories"
	"orderdesk/internal/validation"
)

// FormService manages the create-order form sessions.
type FormService struct {
	backend  orderform.Backend
	rules    *validation.Rules
	sessions *repositories.SessionRepository[*orderform.Session]
	opts     []orderform.Option
}

// NewFormService creates a new FormService.
func NewFormService(backend orderform.Backend, sessions *repositories.SessionRepository[*orderform.Session], opts ...orderform.Option) *FormService {
	return &FormService{
		backend:  backend,
		rules:    validation.New(),
		sessions: sessions,
		opts:     opts,
	}
}

// Open starts a new form session and loads its catalog snapshot. A catalog
// failure does not prevent the session from opening; it shows as the banner.
func (s *FormService) Open(ctx context.Context) (string, *orderform.Session) {
	session := orderform.NewSession(s.backend, s.rules, s.opts...)
	if err := session.Load(ctx); err != nil {
		log.Printf("Form session opened without catalog: %v", err)
	}
	id := s.sessions.Create(session)
	return id, session
}

// Get returns the form session with the given ID.
func (s *FormService) Get(id string) (*orderform.Session, error) {
	return s.sessions.GetByID(id)
}

// Close ends the session with the given ID.
func (s *FormService) Close(id string) error {
	session, err := s.sessions.Delete(id)
	if err != nil {
		return fmt.Errorf("close form session: %w", err)
	}
	session.Close()
	return nil
}

// Expire closes every form session idle for longer than maxIdle and returns
// how many were closed.
func (s *FormService) Expire(maxIdle time.Duration) int {
	expired := s.sessions.Expire(maxIdle)
	for _, session := range expired {
		session.Close()
	}
	if len(expired) > 0 {
		log.Printf("Expired %d idle form sessions", len(expired))
	}
	return len(expired)
}
