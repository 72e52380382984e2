package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fplhub/fpl-league-hub/internal/api/handlers"
	"github.com/fplhub/fpl-league-hub/internal/services"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, league *services.LeagueService, cache *services.CacheService) {
	leagueHandler := handlers.NewLeagueHandler(league)
	adminHandler := handlers.NewAdminHandler(cache)

	// League endpoints
	group.GET("/league/entries", leagueHandler.GetEntries)
	group.GET("/league/current-gw", leagueHandler.GetCurrentGw)
	group.GET("/league/gw-points", leagueHandler.GetGwPoints)
	group.GET("/league/month-points", leagueHandler.GetMonthPoints)

	// Ranking endpoints
	group.GET("/rankings/weekly/:gw", leagueHandler.GetWeeklyRanking)
	group.GET("/rankings/monthly/:month", leagueHandler.GetMonthlyRanking)

	// Awards endpoints
	group.GET("/awards/summary", leagueHandler.GetAwardsSummary)
	group.GET("/awards/leaderboard", leagueHandler.GetAwardsLeaderboard)

	// Stats endpoints
	group.GET("/stats/top-picks", leagueHandler.GetTopPicks)
	group.GET("/stats/fun", leagueHandler.GetFunStats)
	group.GET("/stats/transfers", leagueHandler.GetTransferHistory)
	group.GET("/stats/chips", leagueHandler.GetChipHistory)

	// Admin endpoints (should be protected behind a gateway in production)
	group.POST("/admin/cache/clear", adminHandler.ClearCache)
	group.GET("/admin/cache/stats", adminHandler.CacheStats)
}
