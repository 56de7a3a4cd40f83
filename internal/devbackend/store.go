// Package devbackend is a development stand-in for the order backend. It
// serves the products and orders resources the order desk talks to.
package devbackend

import (
	"fmt"
	"log"

	"orderdesk/internal/config"
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store holds the repositories backing the dev backend.
type Store struct {
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository
}

// OpenStore opens the store selected by cfg.DatabaseType.
func OpenStore(cfg *config.Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseType {
	case config.DatabaseMemory:
		return &Store{
			Products: repositories.NewMockProductRepository(),
			Orders:   repositories.NewMockOrderRepository(),
		}, nil
	case config.DatabaseSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.DatabasePostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DatabaseType, err)
	}
	return NewGORMStore(db)
}

// NewGORMStore migrates db and wraps it in a Store.
func NewGORMStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	log.Printf("Database migrated")
	return &Store{
		Products: repositories.NewGORMProductRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
	}, nil
}

// DefaultProducts is the catalog a fresh dev backend starts with.
func DefaultProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Laptop", Price: 1200.00, Stock: 10},
		{ID: "2", Name: "Keyboard", Price: 75.00, Stock: 25},
		{ID: "3", Name: "Mouse", Price: 25.00, Stock: 50},
		{ID: "4", Name: "Monitor", Price: 300.00, Stock: 0},
	}
}
