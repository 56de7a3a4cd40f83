package services

import (
	"fmt"
	"log"

	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
)

// OrderEventPublisher announces stored orders.
type OrderEventPublisher interface {
	PublishOrderCreated(order models.Order) error
}

// OrderService stores and lists orders for the dev backend. It keeps what it
// is given; pricing and validation happen in the order form.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    OrderEventPublisher
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, events OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByEmail retrieves the orders placed with email.
func (s *OrderService) GetOrdersByEmail(email string) ([]models.Order, error) {
	return s.orderRepo.GetByEmail(email)
}

// CreateOrder stores a new order and returns it with its assigned ID.
func (s *OrderService) CreateOrder(order models.Order) (*models.Order, error) {
	order.ID = ""
	if order.Products == nil {
		order.Products = []models.OrderLine{}
	}
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	log.Printf("Stored order %s (%s)", order.ID, order.OrderCode)

	if s.events != nil {
		if err := s.events.PublishOrderCreated(order); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		}
	}
	return &order, nil
}
