package services

import (
	"encoding/json"
	"fmt"
	"log"

	"glowshop/internal/models"
	"glowshop/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes catalog events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // may be nil when events are disabled
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProducts retrieves all products in insertion order.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// ListByCategory retrieves all products in a category, ignoring case.
// An empty match is reported as not found.
func (s *CatalogService) ListByCategory(category string) ([]models.Product, error) {
	products, err := s.repo.GetByCategory(category)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products in category %s: %w", category, repositories.ErrNotFound)
	}
	return products, nil
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct adds a new product with a freshly generated ID. When an
// uploaded image path is supplied it takes precedence over the image
// field from the request body.
func (s *CatalogService) CreateProduct(product *models.Product, uploadedImage string) (*models.Product, error) {
	product.ID = uuid.New().String()
	if uploadedImage != "" {
		product.Image = uploadedImage
	}

	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publishEvent("product.created", product)
	return product, nil
}

// UpdateProduct replaces every field of an existing product except its ID.
// The image field is replaced only when a new upload is present; otherwise
// the stored image is retained, regardless of what the body supplied.
func (s *CatalogService) UpdateProduct(id string, fields models.Product, uploadedImage string) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields.ID = id
	if uploadedImage != "" {
		fields.Image = uploadedImage
	} else {
		fields.Image = existing.Image
	}

	if err := s.repo.Update(&fields); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	s.publishEvent("product.updated", &fields)
	return &fields, nil
}

// RemoveProduct deletes a product and returns the remaining collection.
func (s *CatalogService) RemoveProduct(id string) ([]models.Product, error) {
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}

	s.publishEvent("product.deleted", map[string]string{"id": id})
	return s.repo.GetAll()
}

// publishEvent sends a catalog event if a publisher is configured.
// Publishing is best-effort: failures are logged, never surfaced to the
// caller.
func (s *CatalogService) publishEvent(routingKey string, payload interface{}) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
