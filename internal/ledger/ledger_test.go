package ledger

import (
	"testing"
	"time"

	"e-kasir/internal/checkout"
	"e-kasir/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLedger(t *testing.T) (*Ledger, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
	))

	products := []models.Product{
		{Name: "Espresso", Price: 25000, Category: "Kopi", Barcodes: []string{"CF-001"}, Stock: 10},
		{Name: "Latte", Price: 35000, Category: "Kopi", Barcodes: []string{"CF-002"}, Stock: 1},
	}
	require.NoError(t, db.Create(&products).Error)

	return New(db), db
}

func sampleSale(date time.Time) *models.Transaction {
	return &models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: 1, Name: "Espresso", Price: 25000, Category: "Kopi", Quantity: 2},
			{ProductID: 2, Name: "Latte", Price: 35000, Category: "Kopi", Quantity: 1},
		},
		Total:   85000,
		Payment: 100000,
		Change:  15000,
		Date:    date,
		Cogs:    34000,
		Profit:  51000,
	}
}

func TestRecordAssignsIDAndMovesStock(t *testing.T) {
	led, db := testLedger(t)

	recorded, err := led.Record(sampleSale(time.Now()))
	require.NoError(t, err)
	assert.NotZero(t, recorded.ID)

	stored, err := led.Get(recorded.ID)
	require.NoError(t, err)
	assert.InDelta(t, 85000, stored.Total, 1e-9)
	assert.Len(t, stored.Items, 2)

	var espresso models.Product
	require.NoError(t, db.First(&espresso, 1).Error)
	assert.Equal(t, 8, espresso.Stock)
}

func TestRecordFloorsStockAtZero(t *testing.T) {
	led, db := testLedger(t)

	sale := &models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: 2, Name: "Latte", Price: 35000, Quantity: 5},
		},
		Total:   175000,
		Payment: 200000,
		Change:  25000,
		Date:    time.Now(),
	}

	_, err := led.Record(sale)
	require.NoError(t, err)

	var latte models.Product
	require.NoError(t, db.First(&latte, 2).Error)
	assert.Equal(t, 0, latte.Stock)
}

func TestRecordSurvivesDeletedProduct(t *testing.T) {
	led, _ := testLedger(t)

	sale := &models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: 99, Name: "Ghost", Price: 1000, Quantity: 1},
		},
		Total:   1000,
		Payment: 1000,
		Date:    time.Now(),
	}

	recorded, err := led.Record(sale)
	require.NoError(t, err)
	assert.NotZero(t, recorded.ID)
}

func TestListNewestFirst(t *testing.T) {
	led, _ := testLedger(t)

	older := sampleSale(time.Now().Add(-time.Hour))
	newer := sampleSale(time.Now())
	_, err := led.Record(older)
	require.NoError(t, err)
	_, err = led.Record(newer)
	require.NoError(t, err)

	all, err := led.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
}

func TestGetUnknown(t *testing.T) {
	led, _ := testLedger(t)
	_, err := led.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecomputesFigures(t *testing.T) {
	led, _ := testLedger(t)

	recorded, err := led.Record(sampleSale(time.Now()))
	require.NoError(t, err)

	// Drop the latte; total falls, change moves upward
	updated, err := led.Update(recorded.ID, EditRequest{
		Items: []models.TransactionItem{
			{ProductID: 1, Name: "Espresso", Price: 25000, Category: "Kopi", Quantity: 2},
		},
		Payment: 100000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 50000, updated.Total, 1e-9)
	assert.InDelta(t, 50000, updated.Change, 1e-9)
	assert.InDelta(t, 20000, updated.Cogs, 1e-6)
	assert.InDelta(t, 30000, updated.Profit, 1e-6)

	stored, err := led.Get(recorded.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestUpdateRejectsPaymentBelowRevisedTotal(t *testing.T) {
	led, _ := testLedger(t)

	recorded, err := led.Record(sampleSale(time.Now()))
	require.NoError(t, err)

	_, err = led.Update(recorded.ID, EditRequest{
		Items: []models.TransactionItem{
			{ProductID: 1, Name: "Espresso", Price: 25000, Quantity: 10},
		},
		Payment: 100000,
	})
	assert.ErrorIs(t, err, checkout.ErrInsufficientPayment)

	// The stored record is untouched by the rejected edit
	stored, err := led.Get(recorded.ID)
	require.NoError(t, err)
	assert.InDelta(t, 85000, stored.Total, 1e-9)
	assert.Len(t, stored.Items, 2)
}

func TestUpdateUnknown(t *testing.T) {
	led, _ := testLedger(t)
	_, err := led.Update(7, EditRequest{Payment: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}
