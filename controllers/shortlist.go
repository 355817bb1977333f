package controllers

import (
	"net/http"
	"strconv"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/services"

	"github.com/gin-gonic/gin"
)

// ToggleShortlist flips the caller's shortlist membership for a startup and
// returns the new state.
func ToggleShortlist(c *gin.Context) {
	startupID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startup id"})
		return
	}

	var startup models.Startup
	if err := config.DB.Where("id = ?", startupID).First(&startup).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}

	userID := c.GetInt("userID")
	shortlisted, err := services.NewFeedbackService(config.DB).ToggleShortlist(startup.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shortlist"})
		return
	}

	message := "Removed from shortlist"
	if shortlisted {
		message = "Added to shortlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     message,
		"shortlisted": shortlisted,
	})
}

// GetMyShortlist lists the caller's shortlisted startups, newest first.
func GetMyShortlist(c *gin.Context) {
	userID := c.GetInt("userID")

	rows, err := services.NewFeedbackService(config.DB).UserShortlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shortlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(rows),
		"shortlist": rows,
	})
}
