// Package orderlist implements the order list page: an authoritative list of
// orders fetched from the backend plus a filtered, sortable working copy.
package orderlist

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"orderdesk/internal/models"
)

// ErrLoadingOrders is the banner shown when the orders cannot be fetched.
const ErrLoadingOrders = "Error loading orders"

// OrderSource lists every order.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// View holds one visitor's order list.
type View struct {
	source OrderSource

	mu         sync.RWMutex
	orders     []models.Order
	filtered   []models.Order
	searchTerm string
	loading    bool
	err        string
}

// NewView creates an empty list over source. Call Load to fill it.
func NewView(source OrderSource) *View {
	return &View{source: source}
}

// Load fetches all orders, replacing both lists and dropping the search term.
// On failure the previous lists are kept and the error banner is set.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	orders, err := v.source.ListOrders(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		log.Printf("Error loading orders: %v", err)
		v.err = ErrLoadingOrders
		return fmt.Errorf("load orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	v.orders = orders
	v.filtered = slices.Clone(orders)
	v.searchTerm = ""
	return nil
}

// Refresh re-runs the initial fetch.
func (v *View) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// Filter sets the search term and recomputes the filtered list from the
// authoritative list.
func (v *View) Filter(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchTerm = term
	v.filtered = filterOrders(v.orders, term)
}

// ClearFilter resets the search term and shows every order again.
func (v *View) ClearFilter() {
	v.Filter("")
}

// SortByDate orders the filtered list newest first.
func (v *View) SortByDate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	slices.SortStableFunc(v.filtered, func(a, b models.Order) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

// SortByTotal orders the filtered list by total, highest first.
func (v *View) SortByTotal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	slices.SortStableFunc(v.filtered, func(a, b models.Order) int {
		switch {
		case a.Total > b.Total:
			return -1
		case a.Total < b.Total:
			return 1
		default:
			return 0
		}
	})
}

// Orders returns a copy of the authoritative list.
func (v *View) Orders() []models.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.orders)
}

// Filtered returns a copy of the filtered list.
func (v *View) Filtered() []models.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.filtered)
}

// SearchTerm returns the current search term.
func (v *View) SearchTerm() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.searchTerm
}

// ProductCount is the number of items in order.
func ProductCount(order models.Order) int {
	return order.ItemCount()
}

func filterOrders(orders []models.Order, term string) []models.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(orders)
	}

	out := []models.Order{}
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.CustomerName), term) ||
			strings.Contains(strings.ToLower(o.Email), term) {
			out = append(out, o)
		}
	}
	return out
}
