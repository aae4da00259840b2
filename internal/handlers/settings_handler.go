package handlers

import (
	"net/http"

	"e-kasir/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: Store profile, canned default until one is saved ---
func (h *Handler) GetSettings(c *gin.Context) {
	cfg, err := h.settings.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// --- PUT: Overwrite the store profile wholesale ---
func (h *Handler) SaveSettings(c *gin.Context) {
	var cfg models.AppSettings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := h.settings.Save(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
