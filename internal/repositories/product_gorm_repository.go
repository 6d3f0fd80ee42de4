package repositories

import (
	"errors"
	"strings"

	"inventory/internal/apperrors"
	"inventory/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Initialize migrates the products table and seeds it when it is empty.
// Counting and seeding share a transaction so a second call never duplicates rows.
func (r *GORMProductRepository) Initialize() error {
	if err := r.db.AutoMigrate(&models.Product{}); err != nil {
		return apperrors.Storage("migrate products table", err)
	}

	var seeded int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		products := SeedProducts()
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		seeded = len(products)
		return nil
	})
	if err != nil {
		return apperrors.Storage("seed products", err)
	}
	if seeded > 0 {
		zap.L().Info("sample products added to database", zap.Int("count", seeded))
	}
	return nil
}

// GetAll retrieves all products from the database, newest first.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id DESC").Find(&products).Error; err != nil {
		return nil, apperrors.Storage("get all products", err)
	}
	return products, nil
}

// Find retrieves the products matching filter, newest first.
func (r *GORMProductRepository) Find(filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.Order("id DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := likePattern(term)
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, apperrors.Storage("find products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(id)
		}
		return nil, apperrors.Storage("get product", err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns its ID.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = 0
	if err := r.db.Create(product).Error; err != nil {
		return apperrors.Storage("create product", err)
	}
	return nil
}

// Update overwrites every column of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	// Save would insert a missing row, so update by ID and inspect RowsAffected.
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"category":    product.Category,
		"image_url":   product.ImageURL,
	})
	if res.Error != nil {
		return apperrors.Storage("update product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(product.ID)
	}
	return nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Storage("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(id)
	}
	return nil
}

func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
