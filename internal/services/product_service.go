package services

import (
	"sort"
	"time"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher delivers committed product changes to interested consumers.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListProducts retrieves all products, newest first.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// SearchProducts retrieves the products matching filter, newest first.
func (s *ProductService) SearchProducts(filter models.ProductFilter) ([]models.Product, error) {
	if filter.IsEmpty() {
		return s.repo.GetAll()
	}
	return s.repo.Find(filter)
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates payload, applies defaults and stores the product.
// It returns the new product's ID.
func (s *ProductService) CreateProduct(payload models.ProductPayload) (uint, error) {
	product, err := validation.ValidateForCreate(payload)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Create(product); err != nil {
		return 0, err
	}
	s.publish(models.EventProductCreated, product.ID, product)
	return product.ID, nil
}

// UpdateProduct replaces every field of an existing product. All fields must
// be present in payload; nothing is defaulted.
func (s *ProductService) UpdateProduct(id uint, payload models.ProductPayload) error {
	product, err := validation.ValidateForUpdate(payload)
	if err != nil {
		return err
	}
	product.ID = id
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(models.EventProductUpdated, id, product)
	return nil
}

// DeleteProduct permanently removes a product.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(models.EventProductDeleted, id, nil)
	return nil
}

// AdjustQuantity sets a product's stock level. The stored record is re-read,
// only its quantity replaced, and the full record goes through UpdateProduct.
func (s *ProductService) AdjustQuantity(id uint, quantity any) error {
	if _, err := validation.ParseQuantity(quantity); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	payload := models.PayloadFromProduct(*existing)
	payload.Quantity = quantity
	return s.UpdateProduct(id, payload)
}

// Categories returns the distinct product categories in alphabetical order.
func (s *ProductService) Categories() ([]string, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// Stats summarizes the current inventory.
func (s *ProductService) Stats() (models.InventoryStats, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return models.InventoryStats{}, err
	}
	return models.Summarize(products), nil
}

// publish is best effort: a failed publish is logged and never undoes the change.
func (s *ProductService) publish(eventType string, id uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		zap.L().Warn("failed to publish product event",
			zap.String("type", eventType), zap.Uint("product_id", id), zap.Error(err))
		return
	}
	zap.L().Debug("published product event", zap.String("type", eventType), zap.Uint("product_id", id))
}
