package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"e-kasir/internal/cart"
	"e-kasir/internal/checkout"
	"e-kasir/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutRequest struct {
	DraftID       string  `json:"draft_id"` // Empty means the active session
	Payment       float64 `json:"payment"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
}

// --- POST: Confirm payment on a cart session ---
// Records the sale and stock movement atomically, then closes the
// session. The last session closing spawns a fresh empty one.
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var draft cart.DraftCart
	var err error
	if req.DraftID == "" {
		draft, err = h.carts.Active()
	} else {
		draft, err = h.carts.Get(req.DraftID)
	}
	if err != nil {
		metrics.CheckoutRejectedTotal.WithLabelValues("no_session").Inc()
		h.cartError(c, err)
		return
	}

	if len(draft.Items) == 0 {
		metrics.CheckoutRejectedTotal.WithLabelValues("empty_cart").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	sale, err := checkout.Build(draft.Items, req.Payment, req.CustomerName, req.CustomerPhone)
	if errors.Is(err, checkout.ErrInsufficientPayment) {
		metrics.CheckoutRejectedTotal.WithLabelValues("insufficient_payment").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment is less than total",
			"total": checkout.Total(draft.Items),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build transaction"})
		return
	}

	recorded, err := h.ledger.Record(sale)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	// The session is finished; drop it. A delete failure here is not
	// a sale failure, the record is already durable.
	if err := h.carts.DeleteDraft(draft.ID); err != nil {
		zap.L().Warn("could not close cart session after checkout",
			zap.String("draft_id", draft.ID), zap.Error(err))
	}
	metrics.DraftCarts.Set(float64(len(h.carts.Drafts())))
	metrics.SalesCompletedTotal.Inc()
	metrics.SalesRevenueTotal.Add(recorded.Total)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Sale recorded",
		"transaction": recorded,
		"active_id":   h.carts.ActiveID(),
	})
}

// --- GET: Quick-cash suggestions for a total ---
// Round notes plus the exact rounded total; a convenience for the
// payment dialog, not a financial rule.
func (h *Handler) QuickCash(c *gin.Context) {
	total, err := strconv.ParseFloat(c.Query("total"), 64)
	if err != nil || total < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": checkout.QuickCash(total)})
}
