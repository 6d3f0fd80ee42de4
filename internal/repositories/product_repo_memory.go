package repositories

import (
	"sort"
	"sync"

	"inventory/internal/apperrors"
	"inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// Initialize seeds the repository when it holds no products.
func (r *InMemoryProductRepository) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.products) > 0 {
		return nil
	}
	for _, p := range SeedProducts() {
		r.insertLocked(&p)
	}
	return nil
}

// GetAll returns all products, newest first.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	return r.Find(models.ProductFilter{})
}

// Find returns the products matching filter, newest first.
func (r *InMemoryProductRepository) Find(filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Matches(p) {
			productList = append(productList, p)
		}
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID > productList[j].ID
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound(id)
	}
	return &product, nil
}

// Create adds a new product and assigns the next ID.
func (r *InMemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(product)
	return nil
}

// Update modifies an existing product.
func (r *InMemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.NotFound(product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.NotFound(id)
	}
	delete(r.products, id)
	return nil
}

// insertLocked never reuses an ID, even after deletions.
func (r *InMemoryProductRepository) insertLocked(product *models.Product) {
	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
}
