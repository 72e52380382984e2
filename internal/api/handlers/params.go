package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/fpl"
	"github.com/fplhub/fpl-league-hub/internal/processor"
	"github.com/fplhub/fpl-league-hub/pkg/utils"
)

// queryInt reads an integer query parameter, falling back on absence and
// reporting a validation error on garbage.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name+" parameter", err.Error())
		return 0, false
	}
	return val, true
}

// gwRangeParams resolves start_gw/end_gw, defaulting to the full season so
// far. Returns ok=false after writing the error response.
func (h *LeagueHandler) gwRangeParams(c *gin.Context) (startGw, endGw int, ok bool) {
	currentGw, err := h.league.CurrentGw(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return 0, 0, false
	}

	startGw, ok = queryInt(c, "start_gw", 1)
	if !ok {
		return 0, 0, false
	}
	endGw, ok = queryInt(c, "end_gw", currentGw)
	if !ok {
		return 0, 0, false
	}
	if startGw < 1 || endGw > 38 || startGw > endGw {
		utils.SendValidationError(c, "Invalid gameweek range", "start_gw and end_gw must satisfy 1 <= start_gw <= end_gw <= 38")
		return 0, 0, false
	}
	return startGw, endGw, true
}

// handleServiceError maps service failures to the response envelope.
// Exhausted upstream fetches and empty leagues are the caller's 502; anything
// else is a 500.
func handleServiceError(c *gin.Context, err error) {
	var apiErr *fpl.APIError
	switch {
	case errors.Is(err, fpl.ErrNoEntries):
		utils.SendUpstreamError(c, "League returned no entries")
	case errors.Is(err, processor.ErrEmptyResult):
		utils.SendUpstreamError(c, "No data could be assembled for the league")
	case errors.As(err, &apiErr):
		utils.SendUpstreamError(c, "FPL API request failed")
	default:
		utils.SendInternalError(c, "Unexpected error")
	}
}
