package catalog

import (
	"errors"
	"fmt"
	"strings"

	"e-kasir/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("product not found")
	ErrValidation = errors.New("invalid product")
)

// LowStockThreshold flags products for the stock warning badge. The
// badge is advisory only and never blocks a sale.
const LowStockThreshold = 10

// StockItem is the stock-ledger view of a product.
type StockItem struct {
	models.Product
	Threshold int  `json:"threshold"`
	Low       bool `json:"low"`
}

// Catalog is the keyed-record store of sellable products.
type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Validate applies the item-form rules: a name, a non-negative price
// and stock, and at least one barcode.
func Validate(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	if len(p.Barcodes) == 0 {
		return fmt.Errorf("%w: at least one barcode is required", ErrValidation)
	}
	return nil
}

func (c *Catalog) List() ([]models.Product, error) {
	var products []models.Product
	err := c.db.Order("id").Find(&products).Error
	return products, err
}

func (c *Catalog) Get(id uint) (*models.Product, error) {
	var p models.Product
	err := c.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert validates and saves a product, creating it when the id is
// zero and replacing it otherwise.
func (c *Catalog) Upsert(p *models.Product) error {
	if err := Validate(p); err != nil {
		return err
	}
	return c.db.Save(p).Error
}

func (c *Catalog) Delete(id uint) error {
	res := c.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search filters products by a case-insensitive substring of the name
// or any barcode. No match is an empty list, never an error.
func (c *Catalog) Search(q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return c.List()
	}

	pattern := "%" + strings.ToLower(q) + "%"
	var products []models.Product
	err := c.db.
		Where("LOWER(name) LIKE ? OR LOWER(barcodes) LIKE ?", pattern, pattern).
		Order("id").
		Find(&products).Error
	return products, err
}

// FindByBarcode resolves a scanned code to its product by exact,
// case-insensitive barcode match.
func (c *Catalog) FindByBarcode(code string) (*models.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotFound
	}

	// Barcodes live in a serialized column, so the query narrows and
	// the exact match is checked against the decoded list.
	var candidates []models.Product
	err := c.db.
		Where("LOWER(barcodes) LIKE ?", "%"+strings.ToLower(code)+"%").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		for _, b := range candidates[i].Barcodes {
			if strings.EqualFold(b, code) {
				return &candidates[i], nil
			}
		}
	}
	return nil, ErrNotFound
}

// AdjustStock is a constrained upsert: only the stock count changes.
// The reason is display-only and goes to the log, not the store.
func (c *Catalog) AdjustStock(id uint, newStock int, reason string) (*models.Product, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	p, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	old := p.Stock
	p.Stock = newStock
	if err := c.db.Model(p).Update("stock", newStock).Error; err != nil {
		return nil, err
	}

	zap.L().Info("stock adjusted",
		zap.Uint("product_id", id),
		zap.Int("from", old),
		zap.Int("to", newStock),
		zap.String("reason", reason))
	return p, nil
}

// Stock returns the stock-ledger view of the whole catalog.
func (c *Catalog) Stock() ([]StockItem, error) {
	products, err := c.List()
	if err != nil {
		return nil, err
	}

	items := make([]StockItem, 0, len(products))
	for _, p := range products {
		items = append(items, StockItem{
			Product:   p,
			Threshold: LowStockThreshold,
			Low:       p.Stock < LowStockThreshold,
		})
	}
	return items, nil
}

// LowStock lists only the products under the threshold.
func (c *Catalog) LowStock() ([]StockItem, error) {
	all, err := c.Stock()
	if err != nil {
		return nil, err
	}

	low := all[:0]
	for _, it := range all {
		if it.Low {
			low = append(low, it)
		}
	}
	return low, nil
}
