package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"e-kasir/internal/cart"
	"e-kasir/internal/catalog"
	"e-kasir/internal/config"
	"e-kasir/internal/database"
	"e-kasir/internal/ledger"
	"e-kasir/internal/models"
	"e-kasir/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRouter(t *testing.T) (*gin.Engine, *Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.AppSettings{},
	))

	products := []models.Product{
		{Name: "Espresso", Price: 25000, Category: "Kopi", Barcodes: []string{"CF-001"}, Stock: 100},
		{Name: "Latte", Price: 35000, Category: "Kopi", Barcodes: []string{"CF-002"}, Stock: 100},
	}
	require.NoError(t, db.Create(&products).Error)

	h := New(
		&config.Config{},
		db,
		nil,
		catalog.New(db),
		cart.NewManager(cart.NewMemoryStore()),
		ledger.New(db),
		settings.New(db),
		database.NewReports(db),
		nil,
	)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/products", h.GetProducts)
		api.GET("/products/scan/:barcode", h.ScanProduct)
		api.GET("/carts", h.GetCarts)
		api.POST("/carts", h.CreateCart)
		api.POST("/carts/:id/items", h.AddCartItem)
		api.PUT("/carts/:id/items/:productID", h.SetCartItemQuantity)
		api.POST("/checkout", h.Checkout)
		api.GET("/checkout/suggestions", h.QuickCash)
		api.GET("/transactions", h.GetTransactions)
		api.PUT("/transactions/:id", h.UpdateTransaction)
		api.GET("/settings", h.GetSettings)
	}
	return r, h, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutFlow(t *testing.T) {
	r, h, db := testRouter(t)
	active := h.carts.ActiveID()

	w := doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{
		"payment":       100000,
		"customer_name": "Budi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Transaction models.Transaction `json:"transaction"`
		ActiveID    string             `json:"active_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotZero(t, resp.Transaction.ID)
	assert.InDelta(t, 85000, resp.Transaction.Total, 1e-9)
	assert.InDelta(t, 15000, resp.Transaction.Change, 1e-9)
	assert.InDelta(t, 34000, resp.Transaction.Cogs, 1e-6)
	assert.InDelta(t, 51000, resp.Transaction.Profit, 1e-6)

	// The session closed; a fresh one took over
	assert.NotEqual(t, active, resp.ActiveID)
	assert.Len(t, h.carts.Drafts(), 1)

	// Stock moved with the sale
	var espresso models.Product
	require.NoError(t, db.First(&espresso, 1).Error)
	assert.Equal(t, 98, espresso.Stock)
}

func TestCheckoutInsufficientPaymentRejected(t *testing.T) {
	r, h, _ := testRouter(t)
	active := h.carts.ActiveID()

	w := doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{"payment": 30000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was recorded and the cart kept its items
	w = doJSON(t, r, http.MethodGet, "/api/transactions", nil)
	assert.JSONEq(t, "[]", w.Body.String())

	draft, err := h.carts.Active()
	require.NoError(t, err)
	assert.Len(t, draft.Items, 1)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{"payment": 100000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemByBarcode(t *testing.T) {
	r, h, _ := testRouter(t)
	active := h.carts.ActiveID()

	w := doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"barcode": "cf-002"})
	require.Equal(t, http.StatusOK, w.Code)

	draft, err := h.carts.Active()
	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Latte", draft.Items[0].Name)

	w = doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"barcode": "NOPE"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetQuantityZeroRemovesLineOverHTTP(t *testing.T) {
	r, h, _ := testRouter(t)
	active := h.carts.ActiveID()

	w := doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/carts/%s/items/1", active), gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	var draft cart.DraftCart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Empty(t, draft.Items)
}

func TestProductSearchNoMatchIsEmptyList(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products?q=zzz-unknown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestScanUnknownBarcode(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/products/scan/XX-999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuickCashSuggestions(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/checkout/suggestions?total=85000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []float64 `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Suggestions, float64(85000))

	w = doJSON(t, r, http.MethodGet, "/api/checkout/suggestions?total=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionEditOverHTTP(t *testing.T) {
	r, h, _ := testRouter(t)
	active := h.carts.ActiveID()

	w := doJSON(t, r, http.MethodPost, "/api/carts/"+active+"/items", gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/checkout", gin.H{"payment": 50000})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Transaction models.Transaction `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Transaction.ID

	// Raising the total above the stored payment is rejected
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), gin.H{
		"items": []gin.H{
			{"product_id": 1, "name": "Espresso", "price": 25000, "quantity": 5},
		},
		"payment": 50000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A valid edit recomputes the derived figures
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", id), gin.H{
		"items": []gin.H{
			{"product_id": 1, "name": "Espresso", "price": 25000, "quantity": 2},
		},
		"payment": 50000,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.InDelta(t, 50000, updated.Total, 1e-9)
	assert.Zero(t, updated.Change)
}

func TestSettingsDefaultOverHTTP(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg models.AppSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "E-Kasir", cfg.StoreName)
}
