package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"e-kasir/internal/cart"
	"e-kasir/internal/catalog"
	"e-kasir/internal/metrics"
	"e-kasir/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: All open cart sessions plus the active pointer ---
func (h *Handler) GetCarts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"drafts":    h.carts.Drafts(),
		"active_id": h.carts.ActiveID(),
	})
}

type CreateCartRequest struct {
	Name string `json:"name"`
}

// --- POST: Open a new cart session and make it active ---
func (h *Handler) CreateCart(c *gin.Context) {
	var req CreateCartRequest
	_ = c.ShouldBindJSON(&req) // body optional, empty name auto-labels

	draft := h.carts.CreateDraft(req.Name)
	metrics.DraftCarts.Set(float64(len(h.carts.Drafts())))
	c.JSON(http.StatusCreated, draft)
}

// --- PUT: Switch which session is active. No cart data changes. ---
func (h *Handler) ActivateCart(c *gin.Context) {
	if err := h.carts.SwitchDraft(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_id": c.Param("id")})
}

// --- DELETE: Close a session. The last one is replaced by a fresh
// empty session, a register always has a cart open. ---
func (h *Handler) DeleteCart(c *gin.Context) {
	if err := h.carts.DeleteDraft(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
		return
	}
	metrics.DraftCarts.Set(float64(len(h.carts.Drafts())))
	c.JSON(http.StatusOK, gin.H{
		"drafts":    h.carts.Drafts(),
		"active_id": h.carts.ActiveID(),
	})
}

type AddCartItemRequest struct {
	ProductID uint   `json:"product_id"`
	Barcode   string `json:"barcode"` // Alternative to product_id for scan-to-cart
}

// --- POST: Put one unit of a product into a session ---
// A product already in the cart gets its quantity bumped instead of a
// duplicate line.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var product *models.Product
	if req.Barcode != "" {
		p, err := h.catalog.FindByBarcode(req.Barcode)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No product with that barcode"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Scan lookup failed"})
			return
		}
		product = p
	} else {
		p, err := h.catalog.Get(req.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		product = p
	}

	draft, err := h.carts.AddToCart(c.Param("id"), *product)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// --- PUT: Replace a line's quantity; zero or below removes it ---
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	draft, err := h.carts.SetQuantity(c.Param("id"), uint(productID), req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// --- DELETE: Drop one line from a session ---
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	draft, err := h.carts.RemoveFromCart(c.Param("id"), uint(productID))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// --- DELETE: Empty a session without closing it ---
func (h *Handler) ClearCart(c *gin.Context) {
	draft, err := h.carts.ClearCart(c.Param("id"))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart session not found"})
	case errors.Is(err, cart.ErrNoActiveDraft):
		c.JSON(http.StatusConflict, gin.H{"error": "No active cart session"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart operation failed"})
	}
}
