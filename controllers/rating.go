package controllers

import (
	"context"
	"net/http"
	"strconv"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/services"
	"startup-dashboard-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type rateStartupRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// RateStartup stores or overwrites the caller's rating for a startup.
func RateStartup(c *gin.Context) {
	startupID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startup id"})
		return
	}

	var req rateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var startup models.Startup
	if err := config.DB.Where("id = ?", startupID).First(&startup).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}

	userID := c.GetInt("userID")
	rating, err := services.NewFeedbackService(config.DB).
		UpsertRating(startup.ID, userID, req.Rating, utils.SanitizeInput(req.Comment))
	if err != nil {
		if services.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	invalidateLeaderboardCache(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rating saved",
		"rating":  rating,
	})
}

// GetMyRatings lists the caller's ratings, most recent first.
func GetMyRatings(c *gin.Context) {
	userID := c.GetInt("userID")

	rows, err := services.NewFeedbackService(config.DB).UserRatings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(rows),
		"ratings": rows,
	})
}

// invalidateLeaderboardCache drops the cached aggregate after any rating
// write. Best effort only; the cache expires on its own anyway.
func invalidateLeaderboardCache(ctx context.Context) {
	if config.Redis == nil {
		return
	}
	if err := utils.DeleteCache(ctx, config.Redis, leaderboardCacheKey); err != nil {
		logrus.Warnf("failed to invalidate leaderboard cache: %v", err)
	}
}
