package checkout

import (
	"sort"
	"testing"

	"e-kasir/internal/cart"
	"e-kasir/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() []cart.CartItem {
	return []cart.CartItem{
		{Product: models.Product{ID: 1, Name: "Espresso", Price: 25000, Category: "Kopi"}, Quantity: 2},
		{Product: models.Product{ID: 2, Name: "Latte", Price: 35000, Category: "Kopi"}, Quantity: 1},
	}
}

func TestTotal(t *testing.T) {
	assert.InDelta(t, 85000, Total(sampleCart()), 1e-9)
	assert.Zero(t, Total(nil))
}

func TestBuildComputesChangeAndSplit(t *testing.T) {
	sale, err := Build(sampleCart(), 100000, "Budi", "0812")
	require.NoError(t, err)

	assert.InDelta(t, 85000, sale.Total, 1e-9)
	assert.InDelta(t, 100000, sale.Payment, 1e-9)
	assert.InDelta(t, 15000, sale.Change, 1e-9)
	assert.InDelta(t, 34000, sale.Cogs, 1e-6)
	assert.InDelta(t, 51000, sale.Profit, 1e-6)
	assert.Equal(t, "Budi", sale.CustomerName)
	assert.Equal(t, "0812", sale.CustomerPhone)
	assert.False(t, sale.Date.IsZero())

	require.Len(t, sale.Items, 2)
	assert.Equal(t, uint(1), sale.Items[0].ProductID)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.InDelta(t, 25000, sale.Items[0].Price, 1e-9)
}

func TestBuildExactPaymentHasZeroChange(t *testing.T) {
	sale, err := Build(sampleCart(), 85000, "", "")
	require.NoError(t, err)
	assert.Zero(t, sale.Change)
}

func TestBuildRejectsInsufficientPayment(t *testing.T) {
	_, err := Build(sampleCart(), 84999, "", "")
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestQuickCashAlwaysOffersExactRoundedTotal(t *testing.T) {
	for _, total := range []float64{0, 2500.5, 85000, 123456, 1000000} {
		values := QuickCash(total)

		exact := total
		if total != float64(int64(total)) {
			exact = float64(int64(total) + 1)
		}
		assert.Contains(t, values, exact, "total %v", total)
	}
}

func TestQuickCashSortedAndDeduplicated(t *testing.T) {
	values := QuickCash(85000)

	assert.True(t, sort.Float64sAreSorted(values))
	seen := map[float64]bool{}
	for _, v := range values {
		assert.False(t, seen[v], "duplicate %v", v)
		seen[v] = true
	}

	// 85000 rounds up to the next note of every denomination
	assert.Contains(t, values, float64(90000))
	assert.Contains(t, values, float64(100000))
}

func TestRecomputeRederivesFigures(t *testing.T) {
	sale := &models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: 1, Name: "Espresso", Price: 25000, Quantity: 1},
		},
		Total:   85000,
		Payment: 100000,
	}

	require.NoError(t, Recompute(sale))
	assert.InDelta(t, 25000, sale.Total, 1e-9)
	assert.InDelta(t, 75000, sale.Change, 1e-9) // change moved upward
	assert.InDelta(t, 10000, sale.Cogs, 1e-6)
	assert.InDelta(t, 15000, sale.Profit, 1e-6)
}

func TestRecomputeRejectsTotalAbovePayment(t *testing.T) {
	sale := &models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: 1, Name: "Espresso", Price: 25000, Quantity: 5},
		},
		Payment: 100000,
	}

	assert.ErrorIs(t, Recompute(sale), ErrInsufficientPayment)
}
