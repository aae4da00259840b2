package checkout

import (
	"errors"
	"math"
	"sort"
	"time"

	"e-kasir/internal/cart"
	"e-kasir/internal/models"
)

// ErrInsufficientPayment gates confirmation: a sale can never complete
// while the tendered amount is below the cart total.
var ErrInsufficientPayment = errors.New("payment is less than total")

// Placeholder costing model: cost of goods is a fixed share of the
// sale total, profit is the remainder.
const (
	CogsRatio   = 0.4
	ProfitRatio = 0.6
)

// quickCashDenoms are the round rupiah notes a cashier reaches for.
var quickCashDenoms = []float64{10000, 20000, 50000, 100000}

// Total sums price x quantity over a cart.
func Total(items []cart.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// QuickCash suggests tender amounts for a given total: the round
// notes, their next multiples covering the total, and always the exact
// total rounded up. Deduplicated, ascending.
func QuickCash(total float64) []float64 {
	exact := math.Ceil(total)

	seen := map[float64]bool{exact: true}
	values := []float64{exact}

	add := func(v float64) {
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}

	for _, d := range quickCashDenoms {
		add(d)
		if total > 0 {
			add(math.Ceil(total/d) * d)
		}
	}

	sort.Float64s(values)
	return values
}

// Build assembles the transaction record for a confirmed checkout:
// item snapshot, change, the 40/60 cogs/profit split and a timestamp.
// It does not persist anything.
func Build(items []cart.CartItem, payment float64, customerName, customerPhone string) (*models.Transaction, error) {
	total := Total(items)
	if payment < total {
		return nil, ErrInsufficientPayment
	}

	snapshot := make([]models.TransactionItem, 0, len(items))
	for _, it := range items {
		snapshot = append(snapshot, models.TransactionItem{
			ProductID: it.Product.ID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  it.Category,
			Quantity:  it.Quantity,
		})
	}

	return &models.Transaction{
		Items:         snapshot,
		Total:         total,
		Payment:       payment,
		Change:        payment - total,
		Date:          time.Now(),
		Cogs:          total * CogsRatio,
		Profit:        total * ProfitRatio,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
	}, nil
}

// Recompute re-derives total, change, cogs and profit from a
// transaction's current item list, for the edit flow. The stored
// payment must still cover the revised total.
func Recompute(t *models.Transaction) error {
	var total float64
	for _, it := range t.Items {
		total += it.Price * float64(it.Quantity)
	}
	if t.Payment < total {
		return ErrInsufficientPayment
	}

	t.Total = total
	t.Change = t.Payment - total
	t.Cogs = total * CogsRatio
	t.Profit = total * ProfitRatio
	return nil
}
