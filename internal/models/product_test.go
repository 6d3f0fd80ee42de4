package models_test

import (
	"testing"

	"inventory/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProductFilter_Matches(t *testing.T) {
	mouse := models.Product{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Category: "Electronics"}
	pens := models.Product{Name: "Pen Pack", Description: "Pack of 12 ballpoint pens", Category: "Stationery"}

	tests := []struct {
		name   string
		filter models.ProductFilter
		want   []bool
	}{
		{"empty matches all", models.ProductFilter{}, []bool{true, true}},
		{"search by name ignores case", models.ProductFilter{Search: "MOUSE"}, []bool{true, false}},
		{"search by description", models.ProductFilter{Search: "ballpoint"}, []bool{false, true}},
		{"category is exact", models.ProductFilter{Category: "Stationery"}, []bool{false, true}},
		{"search and category combine", models.ProductFilter{Search: "pack", Category: "Electronics"}, []bool{false, false}},
		{"blank search is ignored", models.ProductFilter{Search: "   "}, []bool{true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want[0], tt.filter.Matches(mouse))
			assert.Equal(t, tt.want[1], tt.filter.Matches(pens))
		})
	}
}

func TestProductFilter_IsEmpty(t *testing.T) {
	assert.True(t, models.ProductFilter{}.IsEmpty())
	assert.True(t, models.ProductFilter{Search: " "}.IsEmpty())
	assert.False(t, models.ProductFilter{Category: "Office"}.IsEmpty())
}

func TestSummarize(t *testing.T) {
	stats := models.Summarize([]models.Product{
		{Price: 10, Quantity: 3},
		{Price: 2.5, Quantity: 4},
		{Price: 99, Quantity: 0},
	})
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 7, stats.TotalItems)
	assert.InDelta(t, 40.0, stats.TotalValue, 1e-9)

	assert.Equal(t, models.InventoryStats{}, models.Summarize(nil))
}

func TestPayloadFromProduct(t *testing.T) {
	p := models.Product{ID: 3, Name: "Stapler", Description: "Heavy-duty", Price: 12.99, Quantity: 64, Category: "Office", ImageURL: "img"}
	payload := models.PayloadFromProduct(p)

	assert.Equal(t, "Stapler", *payload.Name)
	assert.Equal(t, "Heavy-duty", *payload.Description)
	assert.Equal(t, 12.99, payload.Price)
	assert.Equal(t, 64, payload.Quantity)
	assert.Equal(t, "Office", *payload.Category)
	assert.Equal(t, "img", *payload.ImageURL)
}

func TestPayloadFromForm(t *testing.T) {
	payload := models.PayloadFromForm(map[string]string{
		"name":     "Widget",
		"price":    "2.5",
		"quantity": "3",
		"category": "",
	})

	if assert.NotNil(t, payload.Name) {
		assert.Equal(t, "Widget", *payload.Name)
	}
	assert.Equal(t, "2.5", payload.Price)
	assert.Equal(t, "3", payload.Quantity)
	if assert.NotNil(t, payload.Category) {
		assert.Equal(t, "", *payload.Category)
	}
	assert.Nil(t, payload.Description)
	assert.Nil(t, payload.ImageURL)

	assert.Nil(t, models.PayloadFromForm(nil).Price)
}
