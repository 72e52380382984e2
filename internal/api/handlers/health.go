package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/services"
)

type HealthHandler struct {
	cache *services.CacheService
}

func NewHealthHandler(cache *services.CacheService) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// GetHealth is the liveness probe: 200 whenever the server is up.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "fpl-league-hub",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetReady is the readiness probe: requires redis to answer.
func (h *HealthHandler) GetReady(c *gin.Context) {
	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"redis":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
