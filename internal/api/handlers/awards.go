package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// GetAwardsSummary lists weekly and monthly winners per gameweek.
func (h *LeagueHandler) GetAwardsSummary(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	rows, err := h.league.AwardsSummary(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}

// GetAwardsLeaderboard tallies wins and prize money per manager.
func (h *LeagueHandler) GetAwardsLeaderboard(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	rows, err := h.league.AwardsLeaderboard(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}
