package controllers

import (
	"net/http"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"

	"github.com/gin-gonic/gin"
)

// GetMasterStatus reports the lock flag and last-known record count.
func GetMasterStatus(c *gin.Context) {
	locked, err := models.StartupMasterLocked(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read master status"})
		return
	}
	count, err := models.GetMeta(config.DB, models.MetaStartupCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read master status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"locked":        locked,
		"startup_count": count,
	})
}

// LockMaster sets the lock flag so re-ingestion needs an explicit override.
func LockMaster(c *gin.Context) {
	if err := models.SetMeta(config.DB, models.MetaStartupLocked, "1"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock master"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locked": true})
}

// UnlockMaster clears the lock flag.
func UnlockMaster(c *gin.Context) {
	if err := models.SetMeta(config.DB, models.MetaStartupLocked, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlock master"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locked": false})
}
