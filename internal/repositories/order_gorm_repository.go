package repositories

import (
	"fmt"

	"orderdesk/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository. Lines are
// stored as a JSON column on the order row.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders, oldest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.Order("timestamp").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByEmail retrieves the orders placed with email.
func (r *GORMOrderRepository) GetByEmail(email string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.Where("email = ?", email).Order("timestamp").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for %s: %w", email, err)
	}
	return orders, nil
}

// Create stores a new order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}
