package repositories

import (
	"sync"

	"orderdesk/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Orders are returned in insertion order.
type MockOrderRepository struct {
	orders []models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, len(r.orders))
	copy(orderList, r.orders)
	return orderList, nil
}

// GetByEmail returns the orders whose email matches exactly.
func (r *MockOrderRepository) GetByEmail(email string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := []models.Order{}
	for _, order := range r.orders {
		if order.Email == email {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// Create adds a new order, assigning an ID if it has none.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders = append(r.orders, *order)
	return nil
}
