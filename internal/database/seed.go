package database

import (
	"e-kasir/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultProducts is the starter catalog loaded into an empty store so a
// fresh install has something to sell on first launch.
var DefaultProducts = []models.Product{
	{ID: 1, Name: "Espresso", Price: 25000, Category: "Kopi", Barcodes: []string{"CF-001", "8991234567890"}, Stock: 100, Image: "https://placehold.co/300x300.png"},
	{ID: 2, Name: "Latte", Price: 35000, Category: "Kopi", Barcodes: []string{"CF-002"}, Stock: 100, Image: "https://placehold.co/300x300.png"},
	{ID: 3, Name: "Cappuccino", Price: 35000, Category: "Kopi", Barcodes: []string{"CF-003"}, Stock: 80, Image: "https://placehold.co/300x300.png"},
	{ID: 4, Name: "Croissant", Price: 20000, Category: "Roti", Barcodes: []string{"PS-001", "8991234567891"}, Stock: 50, Image: "https://placehold.co/300x300.png"},
	{ID: 5, Name: "Muffin", Price: 22000, Category: "Roti", Barcodes: []string{"PS-002"}, Stock: 60, Image: "https://placehold.co/300x300.png"},
	{ID: 6, Name: "Air Mineral", Price: 10000, Category: "Minuman", Barcodes: []string{"BV-001"}, Stock: 200, Image: "https://placehold.co/300x300.png"},
	{ID: 7, Name: "Es Teh", Price: 18000, Category: "Minuman", Barcodes: []string{"BV-002"}, Stock: 90, Image: "https://placehold.co/300x300.png"},
	{ID: 8, Name: "Americano", Price: 30000, Category: "Kopi", Barcodes: []string{"CF-004"}, Stock: 120, Image: "https://placehold.co/300x300.png"},
	{ID: 9, Name: "Kue Danish", Price: 25000, Category: "Roti", Barcodes: []string{"PS-003"}, Stock: 40, Image: "https://placehold.co/300x300.png"},
	{ID: 10, Name: "Jus Jeruk", Price: 25000, Category: "Minuman", Barcodes: []string{"BV-003"}, Stock: 75, Image: "https://placehold.co/300x300.png"},
	{ID: 11, Name: "Macchiato", Price: 27500, Category: "Kopi", Barcodes: []string{"CF-005"}, Stock: 70, Image: "https://placehold.co/300x300.png"},
	{ID: 12, Name: "Roti Kayu Manis", Price: 32500, Category: "Roti", Barcodes: []string{"PS-004"}, Stock: 35, Image: "https://placehold.co/300x300.png"},
}

// SeedProducts inserts the starter catalog when the products table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&DefaultProducts).Error; err != nil {
		return err
	}
	zap.L().Info("seeded starter catalog", zap.Int("products", len(DefaultProducts)))
	return nil
}
