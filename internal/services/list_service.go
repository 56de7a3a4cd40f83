package services

import (
	"context"
	"log"
	"time"

	"orderdesk/internal/orderlist"
	"orderdesk/internal/repositories"
)

// ListService manages the order list sessions.
type ListService struct {
	source   orderlist.OrderSource
	sessions *repositories.SessionRepository[*orderlist.View]
}

// NewListService creates a new ListService.
func NewListService(source orderlist.OrderSource, sessions *repositories.SessionRepository[*orderlist.View]) *ListService {
	return &ListService{
		source:   source,
		sessions: sessions,
	}
}

// Open starts a new list session and fetches the orders.
func (s *ListService) Open(ctx context.Context) (string, *orderlist.View) {
	view := orderlist.NewView(s.source)
	if err := view.Load(ctx); err != nil {
		log.Printf("List session opened without orders: %v", err)
	}
	return s.sessions.Create(view), view
}

// Get returns the list session with the given ID.
func (s *ListService) Get(id string) (*orderlist.View, error) {
	return s.sessions.GetByID(id)
}

// Close ends the list session with the given ID.
func (s *ListService) Close(id string) error {
	_, err := s.sessions.Delete(id)
	return err
}

// Expire drops every list session idle for longer than maxIdle and returns
// how many were dropped.
func (s *ListService) Expire(maxIdle time.Duration) int {
	expired := s.sessions.Expire(maxIdle)
	if len(expired) > 0 {
		log.Printf("Expired %d idle list sessions", len(expired))
	}
	return len(expired)
}
