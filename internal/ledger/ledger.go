package ledger

import (
	"errors"

	"e-kasir/internal/checkout"
	"e-kasir/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("transaction not found")

// Ledger is the append-only record of completed sales. There is no
// delete; the only mutation is the explicit edit flow in Update.
type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Record persists a new sale and, in the same database transaction,
// walks the sold quantities off the catalog stock. Rows are locked so
// two registers racing on the same product cannot double-spend stock.
// Stock floors at zero; a sale is never blocked by the stock count.
func (l *Ledger) Record(t *models.Transaction) (*models.Transaction, error) {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}

		for _, it := range t.Items {
			// SQLite has no FOR UPDATE; its writers serialize anyway.
			q := tx
			if tx.Dialector.Name() == "mysql" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product models.Product
			err := q.First(&product, it.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product was deleted since it entered the cart; the
				// snapshot still stands, there is just no stock to move.
				continue
			}
			if err != nil {
				return err
			}

			product.Stock -= it.Quantity
			if product.Stock < 0 {
				product.Stock = 0
			}
			if err := tx.Save(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every sale, newest first, with item snapshots.
func (l *Ledger) List() ([]models.Transaction, error) {
	var out []models.Transaction
	err := l.db.Preload("Items").Order("date desc").Find(&out).Error
	return out, err
}

// Get returns one sale by id.
func (l *Ledger) Get(id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.Preload("Items").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EditRequest carries the revised fields the edit flow may change.
type EditRequest struct {
	Items         []models.TransactionItem
	Payment       float64
	CustomerName  string
	CustomerPhone string
}

// Update is a full replace by id. Total, change, cogs and profit are
// re-derived from the revised item list; the save is rejected when the
// revised payment no longer covers the revised total.
func (l *Ledger) Update(id uint, req EditRequest) (*models.Transaction, error) {
	stored, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	revised := *stored
	revised.Payment = req.Payment
	revised.CustomerName = req.CustomerName
	revised.CustomerPhone = req.CustomerPhone
	revised.Items = make([]models.TransactionItem, len(req.Items))
	for i, it := range req.Items {
		it.ID = 0
		it.TransactionID = id
		revised.Items[i] = it
	}

	if err := checkout.Recompute(&revised); err != nil {
		return nil, err
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).
			Delete(&models.TransactionItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Save(&revised).Error
	})
	if err != nil {
		return nil, err
	}
	return &revised, nil
}
