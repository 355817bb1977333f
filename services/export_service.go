package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"startup-dashboard-api/models"

	"gorm.io/gorm"
)

// ExportService produces the flat CSV reports: ratings, shortlists and the
// startup master. Amounts are exported as parsed, which is best-effort; the
// raw_json column carries the original text for anyone who needs it.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// RatingExportRow is one line of the ratings export.
type RatingExportRow struct {
	StartupName string    `json:"startup_name"`
	Username    string    `json:"username"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShortlistExportRow is one line of the shortlists export.
type ShortlistExportRow struct {
	StartupName string    `json:"startup_name"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
}

// WriteRatingsCSV writes the ratings report for all users.
func (s *ExportService) WriteRatingsCSV(w io.Writer) error {
	var rows []RatingExportRow
	err := s.db.Raw(`
		SELECT s.startup_name, u.username, r.rating, r.comment, r.updated_at
		FROM ratings r
		JOIN startups s ON s.id = r.startup_id
		JOIN users u ON u.user_id = r.user_id
		ORDER BY r.updated_at DESC`).Scan(&rows).Error
	if err != nil {
		return err
	}
	return FormatRatingsCSV(w, rows)
}

// WriteShortlistsCSV writes the shortlist report for all users.
func (s *ExportService) WriteShortlistsCSV(w io.Writer) error {
	var rows []ShortlistExportRow
	err := s.db.Raw(`
		SELECT s.startup_name, u.username, sh.created_at
		FROM shortlists sh
		JOIN startups s ON s.id = sh.startup_id
		JOIN users u ON u.user_id = sh.user_id
		ORDER BY sh.created_at DESC`).Scan(&rows).Error
	if err != nil {
		return err
	}
	return FormatShortlistsCSV(w, rows)
}

// WriteStartupsCSV writes the full startup master as stored.
func (s *ExportService) WriteStartupsCSV(w io.Writer) error {
	var startups []models.Startup
	if err := s.db.Order("id").Find(&startups).Error; err != nil {
		return err
	}
	return FormatStartupsCSV(w, startups)
}

// FormatRatingsCSV renders rating rows as a header plus one line per rating.
func FormatRatingsCSV(w io.Writer, rows []RatingExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"startup_name", "username", "rating", "comment", "updated_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.StartupName,
			row.Username,
			strconv.Itoa(row.Rating),
			row.Comment,
			row.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatShortlistsCSV renders shortlist rows.
func FormatShortlistsCSV(w io.Writer, rows []ShortlistExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"startup_name", "username", "created_at"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.StartupName,
			row.Username,
			row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatStartupsCSV renders the startup master.
func FormatStartupsCSV(w io.Writer, startups []models.Startup) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "startup_name", "sector", "city", "year", "amount",
		"website", "leadership", "source_link", "address", "contact", "raw_json",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range startups {
		record := []string{
			strconv.Itoa(s.ID),
			s.StartupName,
			optional(s.Sector),
			optional(s.City),
			optionalInt(s.Year),
			optionalFloat(s.Amount),
			optional(s.Website),
			optional(s.Leadership),
			optional(s.SourceLink),
			optional(s.Address),
			optional(s.Contact),
			s.RawJSON,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
