package client

import (
	"sync"

	"inventory/internal/models"

	"go.uber.org/zap"
)

// API is the subset of Client the cache depends on.
type API interface {
	List(filter models.ProductFilter) ([]models.Product, error)
	Get(id uint) (*models.Product, error)
	Create(payload models.ProductPayload) (uint, error)
	Update(id uint, payload models.ProductPayload) error
	Delete(id uint) error
}

// ProductCache holds the last product list fetched from the server. It is
// refetched after every mutation and is never consulted for ids or stock.
type ProductCache struct {
	api API

	mu       sync.RWMutex
	products []models.Product
}

// NewProductCache creates an empty cache backed by api.
func NewProductCache(api API) *ProductCache {
	return &ProductCache{api: api}
}

// Refresh replaces the cached list with the server's current list.
func (c *ProductCache) Refresh() error {
	products, err := c.api.List(models.ProductFilter{})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}

// Products returns a copy of the cached list, newest first.
func (c *ProductCache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Filter applies filter to the cached list.
func (c *ProductCache) Filter(filter models.ProductFilter) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Stats summarizes the cached list.
func (c *ProductCache) Stats() models.InventoryStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.Summarize(c.products)
}

// Create submits a new product and refreshes the cache.
func (c *ProductCache) Create(payload models.ProductPayload) (uint, error) {
	id, err := c.api.Create(payload)
	if err != nil {
		return 0, err
	}
	return id, c.refreshAfter("create", id)
}

// Update replaces product id and refreshes the cache.
func (c *ProductCache) Update(id uint, payload models.ProductPayload) error {
	if err := c.api.Update(id, payload); err != nil {
		return err
	}
	return c.refreshAfter("update", id)
}

// Delete removes product id and refreshes the cache.
func (c *ProductCache) Delete(id uint) error {
	if err := c.api.Delete(id); err != nil {
		return err
	}
	return c.refreshAfter("delete", id)
}

// AdjustQuantity sets the stock level of product id. The record is read from
// the server, not the cache, and submitted in full.
func (c *ProductCache) AdjustQuantity(id uint, quantity int) error {
	current, err := c.api.Get(id)
	if err != nil {
		return err
	}
	payload := models.PayloadFromProduct(*current)
	payload.Quantity = quantity
	return c.Update(id, payload)
}

func (c *ProductCache) refreshAfter(op string, id uint) error {
	if err := c.Refresh(); err != nil {
		zap.L().Warn("failed to refresh product cache", zap.String("op", op), zap.Uint("product_id", id), zap.Error(err))
		return err
	}
	return nil
}
