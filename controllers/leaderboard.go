package controllers

import (
	"net/http"
	"time"

	"startup-dashboard-api/config"
	"startup-dashboard-api/services"
	"startup-dashboard-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	leaderboardCacheKey = "leaderboard"
	leaderboardCacheTTL = 5 * time.Minute
)

// GetLeaderboard returns the aggregate startup ranking plus the caller's own
// activity counts. The aggregate is cached in Redis for a few minutes and
// invalidated whenever a rating is written.
func GetLeaderboard(c *gin.Context) {
	ctx := c.Request.Context()
	svc := services.NewLeaderboardService(config.DB)

	var entries []services.LeaderboardEntry
	cached := false
	if config.Redis != nil {
		hit, err := utils.GetCache(ctx, config.Redis, leaderboardCacheKey, &entries)
		if err != nil {
			logrus.Warnf("leaderboard cache read failed: %v", err)
		}
		cached = hit && err == nil
	}

	if !cached {
		var err error
		entries, err = svc.Leaderboard()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute leaderboard"})
			return
		}
		if config.Redis != nil {
			if err := utils.SetCache(ctx, config.Redis, leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
				logrus.Warnf("leaderboard cache write failed: %v", err)
			}
		}
	}

	stats, err := svc.StatsForUser(c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute user stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": entries,
		"stats":       stats,
		"cached":      cached,
	})
}
