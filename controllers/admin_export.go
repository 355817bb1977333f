package controllers

import (
	"fmt"
	"io"
	"net/http"

	"startup-dashboard-api/config"
	"startup-dashboard-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ExportRatings streams the ratings report as CSV.
func ExportRatings(c *gin.Context) {
	streamCSV(c, "ratings.csv", services.NewExportService(config.DB).WriteRatingsCSV)
}

// ExportShortlists streams the shortlists report as CSV.
func ExportShortlists(c *gin.Context) {
	streamCSV(c, "shortlists.csv", services.NewExportService(config.DB).WriteShortlistsCSV)
}

// ExportStartups streams the full startup master as CSV.
func ExportStartups(c *gin.Context) {
	streamCSV(c, "startups_master.csv", services.NewExportService(config.DB).WriteStartupsCSV)
}

func streamCSV(c *gin.Context, filename string, write func(w io.Writer) error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := write(c.Writer); err != nil {
		// Headers are already out; all we can do is log.
		logrus.Warnf("csv export %s failed: %v", filename, err)
	}
}
