package models

import (
	"time"
)

// User - The cashier or admin operating the register
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'cashier'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The sellable catalog
type Product struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
	Barcodes []string `gorm:"serializer:json" json:"barcodes"` // One or more scan codes per product
	Stock    int      `json:"stock"`
	Image    string   `json:"image"`
}

// Transaction - A completed sale. Immutable except through the edit flow,
// which recomputes total/change/cogs/profit from a revised item list.
type Transaction struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Items         []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
	Total         float64           `json:"total"`
	Payment       float64           `json:"payment"`
	Change        float64           `json:"change"` // Always payment - total
	Date          time.Time         `json:"date"`
	Cogs          float64           `json:"cogs"`   // 40% of total (placeholder costing model)
	Profit        float64           `json:"profit"` // 60% of total
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerPhone string            `json:"customer_phone,omitempty"`
}

// TransactionItem - Snapshot of a cart line at the moment of sale.
// Name and price are copied so later catalog edits never rewrite history.
type TransactionItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID uint    `json:"transaction_id"`
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
}

// AppSettings - Single-row store profile, overwritten wholesale on save
type AppSettings struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	StoreName     string `json:"store_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	ReceiptFooter string `json:"receipt_footer"`
}
