package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"startup-dashboard-api/config"
	"startup-dashboard-api/models"
	"startup-dashboard-api/services"
	"startup-dashboard-api/utils"

	"github.com/gin-gonic/gin"
)

// notesFallbackKeys are raw-payload keys shown as free-text notes; no
// canonical column exists for them.
var notesFallbackKeys = []string{"notes", "summary", "description"}

// GetStartups lists the startup master with optional filters.
func GetStartups(c *gin.Context) {
	query := config.DB.Model(&models.Startup{}).Order("id")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("startup_name LIKE ?", "%"+q+"%")
	}
	if sectors := c.QueryArray("sector"); len(sectors) > 0 {
		query = query.Where("sector IN ?", sectors)
	}
	if cities := c.QueryArray("city"); len(cities) > 0 {
		query = query.Where("city IN ?", cities)
	}
	if years := c.QueryArray("year"); len(years) > 0 {
		parsed := make([]int, 0, len(years))
		for _, y := range years {
			if n, err := strconv.Atoi(y); err == nil {
				parsed = append(parsed, n)
			}
		}
		if len(parsed) > 0 {
			query = query.Where("year IN ?", parsed)
		}
	}
	if min := c.Query("amount_min"); min != "" {
		if f, err := strconv.ParseFloat(min, 64); err == nil {
			query = query.Where("amount >= ?", f)
		}
	}
	if max := c.Query("amount_max"); max != "" {
		if f, err := strconv.ParseFloat(max, 64); err == nil {
			query = query.Where("amount <= ?", f)
		}
	}

	var startups []models.Startup
	if err := query.Find(&startups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch startups"})
		return
	}

	rows := make([]gin.H, 0, len(startups))
	for i := range startups {
		s := &startups[i]
		rows = append(rows, gin.H{
			"id":           s.ID,
			"startup_name": s.StartupName,
			"sector":       s.Sector,
			"city":         s.City,
			"year":         s.Year,
			"amount":       s.Amount,
			// The source text for the funding figure, which is what users
			// should see; the parsed amount only drives range filters.
			"amount_display": displayAmount(s),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(rows),
		"startups": rows,
	})
}

// GetStartup returns one startup profile: canonical fields, display values
// resolved against the fallback payload, leftover "additional details", and
// the caller's rating and shortlist state.
func GetStartup(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startup id"})
		return
	}

	var startup models.Startup
	if err := config.DB.Where("id = ?", id).First(&startup).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Startup not found"})
		return
	}

	userID := c.GetInt("userID")
	feedback := services.NewFeedbackService(config.DB)

	rating, err := feedback.RatingFor(startup.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rating"})
		return
	}
	shortlisted, err := feedback.IsShortlisted(startup.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shortlist state"})
		return
	}

	display, additional := resolveDisplay(&startup)

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"startup":            startup,
		"display":            display,
		"additional_details": additional,
		"rating":             rating,
		"shortlisted":        shortlisted,
	})
}

// resolveDisplay builds the profile view the way the dashboard shows it:
// each canonical field falls back to the first non-empty raw-payload value
// among its aliases, and whatever raw keys are left over (and non-empty)
// become "additional details".
func resolveDisplay(startup *models.Startup) (map[string]string, map[string]string) {
	payload := startup.RawPayload()
	usedKeys := map[string]bool{}

	rawLookup := func(keys []string) (string, string) {
		for _, key := range keys {
			if value, ok := payload[key]; ok {
				if text := value.Display(); text != "" {
					return text, key
				}
			}
		}
		return "", ""
	}

	withFallback := func(canonical string, current string) string {
		if strings.TrimSpace(current) != "" {
			return strings.TrimSpace(current)
		}
		text, key := rawLookup(utils.AliasesFor(canonical))
		if key != "" {
			usedKeys[key] = true
		}
		return text
	}

	display := map[string]string{
		"startup_name": startup.StartupName,
		"sector":       withFallback("sector", deref(startup.Sector)),
		"city":         withFallback("city", deref(startup.City)),
		"year":         withFallback("year", formatInt(startup.Year)),
		"address":      withFallback("address", deref(startup.Address)),
		"leadership":   withFallback("leadership", deref(startup.Leadership)),
		"contact":      withFallback("contact", deref(startup.Contact)),
		"website":      normalizeURL(withFallback("website", deref(startup.Website))),
		"source_link":  normalizeURL(withFallback("source_link", deref(startup.SourceLink))),
	}

	// The raw funding text beats the lossy parsed float for display.
	if text, key := rawLookup(utils.AliasesFor("amount")); text != "" {
		display["amount"] = text
		usedKeys[key] = true
	} else if startup.Amount != nil {
		display["amount"] = strconv.FormatFloat(*startup.Amount, 'f', -1, 64)
	} else {
		display["amount"] = ""
	}

	if notes, key := rawLookup(notesFallbackKeys); notes != "" {
		display["notes"] = notes
		usedKeys[key] = true
	}

	excluded := map[string]bool{}
	for _, canonical := range utils.CanonicalFields() {
		excluded[canonical] = true
	}
	for _, key := range notesFallbackKeys {
		excluded[key] = true
	}
	for key := range usedKeys {
		excluded[key] = true
	}

	additional := map[string]string{}
	for key, value := range payload {
		if excluded[key] {
			continue
		}
		if text := value.Display(); text != "" {
			additional[key] = text
		}
	}

	return display, additional
}

func displayAmount(startup *models.Startup) string {
	payload := startup.RawPayload()
	for _, key := range utils.AliasesFor("amount") {
		if value, ok := payload[key]; ok {
			if text := value.Display(); text != "" {
				return text
			}
		}
	}
	if startup.Amount != nil {
		return strconv.FormatFloat(*startup.Amount, 'f', -1, 64)
	}
	return ""
}

func normalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// GetStartupFilters returns the distinct filterable values, mirroring the
// sector/city/year dropdowns of the dashboard.
func GetStartupFilters(c *gin.Context) {
	var sectors, cities []string
	var years []int

	if err := config.DB.Model(&models.Startup{}).
		Where("sector IS NOT NULL AND sector <> ''").
		Distinct().Order("sector").Pluck("sector", &sectors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch filters"})
		return
	}
	if err := config.DB.Model(&models.Startup{}).
		Where("city IS NOT NULL AND city <> ''").
		Distinct().Order("city").Pluck("city", &cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch filters"})
		return
	}
	if err := config.DB.Model(&models.Startup{}).
		Where("year IS NOT NULL").
		Distinct().Order("year").Pluck("year", &years).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch filters"})
		return
	}

	sort.Strings(sectors)
	sort.Strings(cities)
	sort.Ints(years)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sectors": sectors,
		"cities":  cities,
		"years":   years,
	})
}
