package handlers

import (
	"errors"
	"net/http"

	"e-kasir/internal/checkout"
	"e-kasir/internal/ledger"
	"e-kasir/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: Full sale history, newest first ---
func (h *Handler) GetTransactions(c *gin.Context) {
	transactions, err := h.ledger.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	t, err := h.ledger.Get(id)
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
		return
	}
	c.JSON(http.StatusOK, t)
}

type TransactionEditRequest struct {
	Items         []models.TransactionItem `json:"items" binding:"required,min=1"`
	Payment       float64                  `json:"payment"`
	CustomerName  string                   `json:"customer_name"`
	CustomerPhone string                   `json:"customer_phone"`
}

// --- PUT: The explicit edit flow ---
// Replaces the item list and payment wholesale; total, change, cogs
// and profit are recomputed server-side. A payment below the revised
// total rejects the save.
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var req TransactionEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	for _, it := range req.Items {
		if it.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item quantity must be at least 1"})
			return
		}
	}

	updated, err := h.ledger.Update(id, ledger.EditRequest{
		Items:         req.Items,
		Payment:       req.Payment,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, checkout.ErrInsufficientPayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment does not cover the revised total"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
	default:
		c.JSON(http.StatusOK, updated)
	}
}
