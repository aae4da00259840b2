package handlers

import (
	"context"
	"net/http"
	"time"

	"e-kasir/internal/utils"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/sync/status ---
// Genuine connectivity checks against the backing stores. There is no
// timer cycling canned states; what this reports is what was measured.
func (h *Handler) GetSyncStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "online"

	dbOK := true
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		dbOK = false
		status = "degraded"
	}

	resp := gin.H{
		"status":     status,
		"database":   dbOK,
		"device_id":  utils.GetDeviceID(),
		"checked_at": time.Now().UTC(),
	}

	if h.redis != nil {
		redisOK := h.redis.Ping(ctx).Err() == nil
		resp["redis"] = redisOK
		if !redisOK {
			resp["status"] = "degraded"
		}
	}

	c.JSON(http.StatusOK, resp)
}
