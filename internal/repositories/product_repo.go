package repositories

import (
	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Lookups and writes against an unknown ID return an apperrors.NotFoundError;
// any other failure is an apperrors.StorageError.
type ProductRepository interface {
	// Initialize creates the schema if needed and seeds an empty table.
	Initialize() error
	// GetAll returns every product, newest ID first.
	GetAll() ([]models.Product, error)
	// Find returns the products matching filter, newest ID first.
	Find(filter models.ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// Create assigns product.ID.
	Create(product *models.Product) error
	// Update overwrites every field of the row with product.ID.
	Update(product *models.Product) error
	Delete(id uint) error
}
