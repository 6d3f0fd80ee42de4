package models

import "time"

// Product event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent is published after a product change has been committed.
type ProductEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurred_at"`
}

// StockAdjustment asks for a product's quantity to be set to a new value.
type StockAdjustment struct {
	ProductID uint `json:"product_id"`
	Quantity  any  `json:"quantity"`
}
