package repositories

import (
	"glowshop/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetAll and GetByCategory return products in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
