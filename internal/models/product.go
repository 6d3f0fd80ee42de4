package models

import "strings"

const (
	// DefaultCategory is stored when a product is created without a category.
	DefaultCategory = "General"
	// DefaultImageURL is stored when a product is created without an image.
	DefaultImageURL = "https://via.placeholder.com/150/999999/ffffff?text=Product"
)

// Product represents an inventory item.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement" csv:"id"`
	Name        string  `json:"name" gorm:"not null" csv:"name" validate:"required"`
	Description string  `json:"description" csv:"description"`
	Price       float64 `json:"price" gorm:"not null" csv:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" gorm:"not null" csv:"quantity" validate:"gte=0"`
	Category    string  `json:"category" csv:"category"`
	ImageURL    string  `json:"image_url" gorm:"column:image_url" csv:"image_url"`
}

// TableName pins the table name used by the original schema.
func (Product) TableName() string {
	return "products"
}

// ProductPayload is a candidate product as received from a client. Text fields are
// pointers so an omitted field can be told apart from an empty one; numeric fields
// accept JSON numbers as well as text coming from form inputs.
type ProductPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       any     `json:"price"`
	Quantity    any     `json:"quantity"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
}

// PayloadFromProduct returns a payload carrying every field of p.
func PayloadFromProduct(p Product) ProductPayload {
	return ProductPayload{
		Name:        &p.Name,
		Description: &p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    &p.Category,
		ImageURL:    &p.ImageURL,
	}
}

// PayloadFromForm builds a payload from submitted form values. Keys that are
// absent stay nil; price and quantity are kept as text.
func PayloadFromForm(values map[string]string) ProductPayload {
	var payload ProductPayload
	text := func(key string) *string {
		if v, ok := values[key]; ok {
			return &v
		}
		return nil
	}
	payload.Name = text("name")
	payload.Description = text("description")
	payload.Category = text("category")
	payload.ImageURL = text("image_url")
	if v, ok := values["price"]; ok {
		payload.Price = v
	}
	if v, ok := values["quantity"]; ok {
		payload.Quantity = v
	}
	return payload
}

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

// IsEmpty reports whether the filter matches every product.
func (f ProductFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Search) == "" && f.Category == ""
}

// Matches reports whether p passes the filter. Search is a case-insensitive
// substring match on name or description, category must match exactly.
func (f ProductFilter) Matches(p Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// InventoryStats summarizes a set of products.
type InventoryStats struct {
	TotalProducts int     `json:"total_products"`
	TotalItems    int     `json:"total_items"`
	TotalValue    float64 `json:"total_value"`
}

// Summarize computes stock totals over products.
func Summarize(products []Product) InventoryStats {
	stats := InventoryStats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalItems += p.Quantity
		stats.TotalValue += p.Price * float64(p.Quantity)
	}
	return stats
}
