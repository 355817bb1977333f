package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/services"
	"startup-dashboard-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxImportSize = 20 * 1024 * 1024

var allowedImportMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/octet-stream":                                          true,
}

// AdminImportStartups ingests an uploaded startup master workbook and
// replaces the stored set. When the master is locked, the request must carry
// replace=true; a successful import locks the master and records the count.
func AdminImportStartups(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An upload file is required"})
		return
	}
	defer file.Close()

	if !importTypeAllowed(header.Header.Get("Content-Type"), header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type, please upload .xlsx"})
		return
	}
	if header.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 20MB limit"})
		return
	}

	uploadDir := filepath.Join(uploadBasePath(), "import_runs", "startups")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}

	storedName := utils.GenerateStoredFilename(header.Filename)
	dstPath := filepath.Join(uploadDir, storedName)
	if err := c.SaveUploadedFile(header, dstPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save upload"})
		return
	}

	svc := services.NewIngestService(config.DB)
	records, err := svc.IngestFile(dstPath)
	if err != nil {
		if services.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Corrupt or unreadable workbook; keep the detail out of the response.
		logrus.Warnf("startup import parse failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read the spreadsheet file. Please verify the format."})
		return
	}

	locked, err := models.StartupMasterLocked(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check master lock"})
		return
	}
	if locked && c.PostForm("replace") != "true" {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Startup master is locked. Resubmit with replace=true to overwrite it.",
		})
		return
	}

	if err := svc.ReplaceStartups(records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save startups"})
		return
	}

	if err := models.SetMeta(config.DB, models.MetaStartupLocked, "1"); err != nil {
		logrus.Warnf("failed to set master lock: %v", err)
	}
	if err := models.SetMeta(config.DB, models.MetaStartupCount, strconv.Itoa(len(records))); err != nil {
		logrus.Warnf("failed to record startup count: %v", err)
	}

	logrus.WithFields(logrus.Fields{"count": len(records), "file": storedName}).Info("startup master replaced")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Uploaded %d startups successfully", len(records)),
		"count":   len(records),
		"file":    storedName,
	})
}

func importTypeAllowed(contentType, filename string) bool {
	if strings.ToLower(filepath.Ext(filename)) != ".xlsx" {
		return false
	}
	if contentType == "" {
		return true
	}
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return allowedImportMimeTypes[strings.TrimSpace(strings.ToLower(contentType))]
}

func uploadBasePath() string {
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		return path
	}
	return "./uploads"
}
