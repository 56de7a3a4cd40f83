package orderform

import (
	"context"
	"log"
	"sync"
	"time"

	"orderdesk/internal/models"
)

const (
	// DefaultDebounce is the quiet period after the last email edit before
	// the history check runs.
	DefaultDebounce = 300 * time.Millisecond
	// RecentOrderWindow is how far back an order counts as recent.
	RecentOrderWindow = 24 * time.Hour
	// RecentOrderLimit is the number of recent orders that blocks a new one.
	RecentOrderLimit = 3
)

// OrderHistory looks up previous orders by email.
type OrderHistory interface {
	ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
}

// TooManyRecentOrders reports whether at least RecentOrderLimit orders were
// placed strictly after now minus RecentOrderWindow.
func TooManyRecentOrders(orders []models.Order, now time.Time) bool {
	since := now.Add(-RecentOrderWindow)
	recent := 0
	for _, o := range orders {
		if o.Timestamp.After(since) {
			recent++
		}
	}
	return recent >= RecentOrderLimit
}

// EmailChecker runs the debounced order history check. Starting a check
// cancels the one before it, whether it is still waiting out the debounce or
// already querying the backend.
type EmailChecker struct {
	history  OrderHistory
	debounce time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewEmailChecker creates a checker over history.
func NewEmailChecker(history OrderHistory, debounce time.Duration, now func() time.Time) *EmailChecker {
	if now == nil {
		now = time.Now
	}
	return &EmailChecker{history: history, debounce: debounce, now: now}
}

// Start schedules a check of email for generation. deliver is called at most
// once, and never for a check that has been superseded or stopped.
func (c *EmailChecker) Start(parent context.Context, generation uint64, email string, deliver func(EmailCheckCompleted)) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()

		timer := time.NewTimer(c.debounce)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		orders, err := c.history.ListOrdersByEmail(ctx, email)
		if ctx.Err() != nil {
			return
		}

		tooMany := false
		if err != nil {
			log.Printf("Order history check for %s failed: %v", email, err)
		} else {
			tooMany = TooManyRecentOrders(orders, c.now())
		}
		deliver(EmailCheckCompleted{Generation: generation, TooManyOrders: tooMany})
	}()
}

// Stop cancels the running check, if any.
func (c *EmailChecker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
