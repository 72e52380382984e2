package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// GetWeeklyRanking ranks one gameweek. An empty result means the gameweek
// has not been played.
func (h *LeagueHandler) GetWeeklyRanking(c *gin.Context) {
	gw, err := strconv.Atoi(c.Param("gw"))
	if err != nil || gw < 1 || gw > 38 {
		utils.SendValidationError(c, "Invalid gameweek", "gw must be between 1 and 38")
		return
	}

	ranking, svcErr := h.league.WeeklyRanking(c.Request.Context(), gw)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}
	utils.SendSuccessWithMeta(c, ranking, &utils.Meta{Count: len(ranking), StartGw: gw, EndGw: gw})
}

// GetMonthlyRanking ranks one month over its mapped gameweeks.
func (h *LeagueHandler) GetMonthlyRanking(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 {
		utils.SendValidationError(c, "Invalid month", "month must be a positive month index")
		return
	}
	if len(h.league.MonthMapping().GwsForMonth(month)) == 0 {
		utils.SendNotFound(c, "Month has no mapped gameweeks")
		return
	}

	ranking, svcErr := h.league.MonthlyRanking(c.Request.Context(), month)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}
	utils.SendSuccessWithMeta(c, ranking, &utils.Meta{Count: len(ranking)})
}
