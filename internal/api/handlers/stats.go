package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/processor"
	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// GetTopPicks returns the most picked players across the league.
func (h *LeagueHandler) GetTopPicks(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", processor.DefaultTopPicks)
	if !ok {
		return
	}

	rows, err := h.league.TopPicks(c.Request.Context(), startGw, endGw, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}

// GetFunStats returns per-gameweek captain, bench and transfer extremes.
func (h *LeagueHandler) GetFunStats(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	rows, err := h.league.FunStats(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}

// GetTransferHistory returns every transfer with both players' points.
func (h *LeagueHandler) GetTransferHistory(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	rows, err := h.league.TransferHistory(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}

// GetChipHistory returns the chip usage grid.
func (h *LeagueHandler) GetChipHistory(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	rows, err := h.league.ChipHistory(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}
