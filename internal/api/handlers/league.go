package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/services"
	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// LeagueHandler serves every league view. All heavy lifting lives in the
// league service; handlers only parse parameters and shape responses.
type LeagueHandler struct {
	league *services.LeagueService
}

func NewLeagueHandler(league *services.LeagueService) *LeagueHandler {
	return &LeagueHandler{league: league}
}

// GetEntries returns the league's entries.
func (h *LeagueHandler) GetEntries(c *gin.Context) {
	entries, err := h.league.Entries(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, entries, &utils.Meta{Count: len(entries)})
}

// GetCurrentGw returns the detected current gameweek.
func (h *LeagueHandler) GetCurrentGw(c *gin.Context) {
	gw, err := h.league.CurrentGw(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccess(c, gin.H{"current_gw": gw})
}

// GetGwPoints returns the flat per-entry per-gameweek points table.
func (h *LeagueHandler) GetGwPoints(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}
	table, err := h.league.GwTable(c.Request.Context(), startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, table, &utils.Meta{Count: len(table), StartGw: startGw, EndGw: endGw})
}

// GetMonthPoints returns the month aggregate table. ?full=true includes
// incomplete months zero-filled with ranks.
func (h *LeagueHandler) GetMonthPoints(c *gin.Context) {
	startGw, endGw, ok := h.gwRangeParams(c)
	if !ok {
		return
	}

	full, _ := strconv.ParseBool(c.DefaultQuery("full", "false"))
	ctx := c.Request.Context()

	if full {
		rows, err := h.league.MonthTableFull(ctx, startGw, endGw)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
		return
	}

	rows, err := h.league.MonthTable(ctx, startGw, endGw)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, &utils.Meta{Count: len(rows), StartGw: startGw, EndGw: endGw})
}
