package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/services"
	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// AdminHandler exposes cache maintenance endpoints.
type AdminHandler struct {
	cache *services.CacheService
}

func NewAdminHandler(cache *services.CacheService) *AdminHandler {
	return &AdminHandler{cache: cache}
}

// ClearCache flushes cached FPL data. ?pattern= limits the clear to matching
// keys, e.g. "fpl:picks:*".
func (h *AdminHandler) ClearCache(c *gin.Context) {
	if h.cache == nil {
		utils.SendInternalError(c, "Cache is not configured")
		return
	}
	ctx := c.Request.Context()

	if pattern := c.Query("pattern"); pattern != "" {
		deleted, err := h.cache.DeletePattern(ctx, pattern)
		if err != nil {
			utils.SendInternalError(c, "Failed to clear cache")
			return
		}
		utils.SendSuccess(c, gin.H{"deleted": deleted, "pattern": pattern})
		return
	}

	if err := h.cache.Flush(ctx); err != nil {
		utils.SendInternalError(c, "Failed to flush cache")
		return
	}
	utils.SendSuccess(c, gin.H{"flushed": true})
}

// CacheStats reports key count and memory usage.
func (h *AdminHandler) CacheStats(c *gin.Context) {
	if h.cache == nil {
		utils.SendInternalError(c, "Cache is not configured")
		return
	}
	stats, err := h.cache.Stats(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to read cache stats")
		return
	}
	utils.SendSuccess(c, stats)
}
