package repositories

import "inventory/internal/models"

// seedProducts is inserted, in order, into an empty products table.
var seedProducts = []models.Product{
	{Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with USB receiver", Price: 29.99, Quantity: 45, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Mouse"},
	{Name: "Mechanical Keyboard", Description: "RGB backlit mechanical gaming keyboard", Price: 89.99, Quantity: 23, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Keyboard"},
	{Name: "USB-C Cable", Description: "High-speed USB-C charging cable 6ft", Price: 14.99, Quantity: 120, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=Cable"},
	{Name: "Laptop Stand", Description: "Adjustable aluminum laptop stand", Price: 39.99, Quantity: 34, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=Stand"},
	{Name: "Webcam HD", Description: "1080p HD webcam with built-in microphone", Price: 59.99, Quantity: 18, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Webcam"},
	{Name: "Desk Lamp", Description: "LED desk lamp with adjustable brightness", Price: 34.99, Quantity: 67, Category: "Office", ImageURL: "https://via.placeholder.com/150/00cc66/ffffff?text=Lamp"},
	{Name: "Notebook Set", Description: "Set of 3 premium lined notebooks", Price: 19.99, Quantity: 89, Category: "Stationery", ImageURL: "https://via.placeholder.com/150/cc00cc/ffffff?text=Notebooks"},
	{Name: "Pen Pack", Description: "Pack of 12 ballpoint pens", Price: 9.99, Quantity: 156, Category: "Stationery", ImageURL: "https://via.placeholder.com/150/cc00cc/ffffff?text=Pens"},
	{Name: `Monitor 24"`, Description: "24-inch Full HD LED monitor", Price: 179.99, Quantity: 12, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Monitor"},
	{Name: "Headphones", Description: "Noise-cancelling over-ear headphones", Price: 129.99, Quantity: 28, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Headphones"},
	{Name: "Phone Stand", Description: "Adjustable phone holder for desk", Price: 15.99, Quantity: 73, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=Phone+Stand"},
	{Name: "Mouse Pad", Description: "Large gaming mouse pad with smooth surface", Price: 19.99, Quantity: 91, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=Mouse+Pad"},
	{Name: "Desk Organizer", Description: "Multi-compartment desk organizer", Price: 24.99, Quantity: 42, Category: "Office", ImageURL: "https://via.placeholder.com/150/00cc66/ffffff?text=Organizer"},
	{Name: "Wireless Charger", Description: "Fast wireless charging pad", Price: 29.99, Quantity: 55, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Charger"},
	{Name: "Paper Clips Box", Description: "Box of 500 paper clips", Price: 5.99, Quantity: 203, Category: "Stationery", ImageURL: "https://via.placeholder.com/150/cc00cc/ffffff?text=Clips"},
	{Name: "Stapler", Description: "Heavy-duty desktop stapler", Price: 12.99, Quantity: 64, Category: "Office", ImageURL: "https://via.placeholder.com/150/00cc66/ffffff?text=Stapler"},
	{Name: "Bluetooth Speaker", Description: "Portable waterproof Bluetooth speaker", Price: 49.99, Quantity: 31, Category: "Electronics", ImageURL: "https://via.placeholder.com/150/0066cc/ffffff?text=Speaker"},
	{Name: "USB Hub", Description: "4-port USB 3.0 hub", Price: 22.99, Quantity: 47, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=USB+Hub"},
	{Name: "Sticky Notes", Description: "Colorful sticky notes pack of 6", Price: 8.99, Quantity: 137, Category: "Stationery", ImageURL: "https://via.placeholder.com/150/cc00cc/ffffff?text=Notes"},
	{Name: "Cable Management", Description: "Cable organizer clips set of 20", Price: 11.99, Quantity: 82, Category: "Accessories", ImageURL: "https://via.placeholder.com/150/ff6600/ffffff?text=Cable+Mgmt"},
}

// SeedProducts returns a fresh copy of the sample product set.
func SeedProducts() []models.Product {
	products := make([]models.Product, len(seedProducts))
	copy(products, seedProducts)
	return products
}
