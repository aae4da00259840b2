package catalog

import (
	"testing"

	"e-kasir/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	c := New(db)
	seed := []models.Product{
		{Name: "Espresso", Price: 25000, Category: "Kopi", Barcodes: []string{"CF-001", "8991234567890"}, Stock: 100},
		{Name: "Latte", Price: 35000, Category: "Kopi", Barcodes: []string{"CF-002"}, Stock: 8},
		{Name: "Croissant", Price: 20000, Category: "Roti", Barcodes: []string{"PS-001"}, Stock: 50},
	}
	for i := range seed {
		require.NoError(t, c.Upsert(&seed[i]))
	}
	return c
}

func TestValidate(t *testing.T) {
	valid := models.Product{Name: "Muffin", Price: 22000, Barcodes: []string{"PS-002"}, Stock: 1}
	assert.NoError(t, Validate(&valid))

	cases := []struct {
		name    string
		product models.Product
	}{
		{"empty name", models.Product{Name: "  ", Price: 1, Barcodes: []string{"X"}}},
		{"negative price", models.Product{Name: "X", Price: -1, Barcodes: []string{"X"}}},
		{"negative stock", models.Product{Name: "X", Price: 1, Stock: -1, Barcodes: []string{"X"}}},
		{"no barcodes", models.Product{Name: "X", Price: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(&tc.product), ErrValidation)
		})
	}
}

func TestUpsertCreatesAndReplaces(t *testing.T) {
	c := testCatalog(t)

	p, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", p.Name)

	p.Price = 26000
	require.NoError(t, c.Upsert(p))

	again, err := c.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, 26000, again.Price, 1e-9)

	all, err := c.List()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Delete(3))
	_, err := c.Get(3)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, c.Delete(99), ErrNotFound)
}

func TestSearchByNameAndBarcodeSubstring(t *testing.T) {
	c := testCatalog(t)

	byName, err := c.Search("lat")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Latte", byName[0].Name)

	byBarcode, err := c.Search("cf-00")
	require.NoError(t, err)
	assert.Len(t, byBarcode, 2)

	// No match is an empty list, never an error
	none, err := c.Search("ZZZ-does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := c.Search("   ")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindByBarcodeExactMatchOnly(t *testing.T) {
	c := testCatalog(t)

	p, err := c.FindByBarcode("cf-001")
	require.NoError(t, err)
	assert.Equal(t, "Espresso", p.Name)

	// Substrings resolve through search, not scan
	_, err = c.FindByBarcode("CF-00")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.FindByBarcode("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	c := testCatalog(t)

	p, err := c.AdjustStock(1, 42, "opname mingguan")
	require.NoError(t, err)
	assert.Equal(t, 42, p.Stock)

	stored, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 42, stored.Stock)

	_, err = c.AdjustStock(1, -5, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.AdjustStock(99, 10, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStockAndLowStock(t *testing.T) {
	c := testCatalog(t)

	all, err := c.Stock()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, it := range all {
		assert.Equal(t, LowStockThreshold, it.Threshold)
	}

	low, err := c.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Latte", low[0].Name)
	assert.True(t, low[0].Low)
}
