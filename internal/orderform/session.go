package orderform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"orderdesk/internal/models"
	"orderdesk/internal/validation"
)

var (
	// ErrFormInvalid is returned by Submit when the form does not validate.
	ErrFormInvalid = errors.New("order form is not valid")
	// ErrSubmitInProgress is returned by Submit while a submission is running.
	ErrSubmitInProgress = errors.New("order submission already in progress")
)

// Backend is what the form needs from the order backend.
type Backend interface {
	OrderHistory
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
}

// Session is one visitor's create-order form. Events are applied one at a
// time; backend calls run outside the lock.
type Session struct {
	backend Backend
	reducer *Reducer
	checker *EmailChecker
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state State
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	debounce time.Duration
	now      func() time.Time
}

// WithDebounce overrides the email check quiet period.
func WithDebounce(d time.Duration) Option {
	return func(o *sessionOptions) { o.debounce = d }
}

// WithClock overrides the wall clock used for timestamps and the history window.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

// NewSession creates an empty form session.
func NewSession(backend Backend, rules *validation.Rules, opts ...Option) *Session {
	o := sessionOptions{debounce: DefaultDebounce, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	reducer := NewReducer(rules)
	return &Session{
		backend: backend,
		reducer: reducer,
		checker: NewEmailChecker(backend, o.debounce, o.now),
		now:     o.now,
		ctx:     ctx,
		cancel:  cancel,
		state:   reducer.Initial(),
	}
}

// State returns the current revision.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies ev and returns the resulting state.
func (s *Session) Dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ev)
	return s.state
}

func (s *Session) apply(ev Event) {
	prev := s.state
	s.state = s.reducer.Apply(prev, ev)

	check := s.state.EmailCheck
	if check.Generation == prev.EmailCheck.Generation {
		return
	}
	if check.Pending {
		s.checker.Start(s.ctx, check.Generation, check.Email, func(done EmailCheckCompleted) {
			s.Dispatch(done)
		})
	} else {
		s.checker.Stop()
	}
}

// Load fetches the catalog snapshot for this session.
func (s *Session) Load(ctx context.Context) error {
	s.Dispatch(LoadStarted{})

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		log.Printf("Error loading products: %v", err)
		s.Dispatch(ProductsFailed{})
		return fmt.Errorf("load products: %w", err)
	}
	s.Dispatch(ProductsLoaded{Products: products})
	return nil
}

// Submit sends the order if the form is valid. An invalid form sends nothing
// and marks every control touched. On success the form is reset.
func (s *Session) Submit(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()
	if s.state.Submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !s.state.Valid() {
		s.apply(AllTouched{})
		s.mu.Unlock()
		return nil, ErrFormInvalid
	}
	order := BuildOrder(s.state, s.now())
	s.apply(SubmitStarted{})
	s.mu.Unlock()

	created, err := s.backend.CreateOrder(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("Error creating order %s: %v", order.OrderCode, err)
		s.apply(SubmitFailed{})
		return nil, fmt.Errorf("submit order: %w", err)
	}
	s.apply(SubmitSucceeded{})
	log.Printf("Order %s created for %s", order.OrderCode, order.Email)
	return created, nil
}

// Close stops any running email check.
func (s *Session) Close() {
	s.checker.Stop()
	s.cancel()
}
