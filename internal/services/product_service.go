package services

import (
	"fmt"

	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
)

// ProductService serves the catalog for the dev backend.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// SeedProducts stores products that are not in the catalog yet.
func (s *ProductService) SeedProducts(products []models.Product) error {
	for i := range products {
		if _, err := s.repo.GetByID(products[i].ID); err == nil {
			continue
		}
		if err := s.repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}
	return nil
}
