package services

import (
	"errors"
	"time"

	"startup-dashboard-api/models"
	"startup-dashboard-api/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedbackService handles per-user ratings and shortlist membership.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// UserRatingRow is one entry of a user's rating history.
type UserRatingRow struct {
	StartupID   int       `json:"startup_id"`
	StartupName string    `json:"startup_name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserShortlistRow is one shortlisted startup with its canonical fields.
type UserShortlistRow struct {
	StartupID   int       `json:"startup_id"`
	StartupName string    `json:"startup_name"`
	Sector      *string   `json:"sector,omitempty"`
	City        *string   `json:"city,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Amount      *float64  `json:"amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpsertRating stores a user's score for a startup. A second submission for
// the same pair overwrites in place; only the latest value survives.
func (s *FeedbackService) UpsertRating(startupID, userID, score int, comment string) (*models.Rating, error) {
	if !utils.ValidateRating(score) {
		return nil, NewValidationError("Rating must be between 1 and 5.")
	}

	rating := models.Rating{
		StartupID: startupID,
		UserID:    userID,
		Score:     score,
		Comment:   comment,
		UpdatedAt: time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "startup_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating.Score,
			"comment":    rating.Comment,
			"updated_at": rating.UpdatedAt,
		}),
	}).Create(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingFor returns the user's rating of a startup, or nil when unrated.
func (s *FeedbackService) RatingFor(startupID, userID int) (*models.Rating, error) {
	var rating models.Rating
	err := s.db.Where("startup_id = ? AND user_id = ?", startupID, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ToggleShortlist flips shortlist membership for the pair and returns the
// new state: true when the startup is now shortlisted. Two calls in a row
// always restore the original state.
func (s *FeedbackService) ToggleShortlist(startupID, userID int) (bool, error) {
	var shortlisted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Shortlist
		err := tx.Where("startup_id = ? AND user_id = ?", startupID, userID).First(&existing).Error
		if err == nil {
			shortlisted = false
			return tx.Delete(&models.Shortlist{}, "startup_id = ? AND user_id = ?", startupID, userID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		shortlisted = true
		return tx.Create(&models.Shortlist{
			StartupID: startupID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}).Error
	})
	return shortlisted, err
}

// IsShortlisted reports current membership without changing it.
func (s *FeedbackService) IsShortlisted(startupID, userID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Shortlist{}).
		Where("startup_id = ? AND user_id = ?", startupID, userID).
		Count(&count).Error
	return count > 0, err
}

// UserRatings lists a user's ratings, most recently updated first.
func (s *FeedbackService) UserRatings(userID int) ([]UserRatingRow, error) {
	var rows []UserRatingRow
	err := s.db.Raw(`
		SELECT s.id AS startup_id, s.startup_name, r.rating, r.comment, r.updated_at
		FROM ratings r
		JOIN startups s ON s.id = r.startup_id
		WHERE r.user_id = ?
		ORDER BY r.updated_at DESC`, userID).Scan(&rows).Error
	return rows, err
}

// UserShortlist lists a user's shortlisted startups, newest first.
func (s *FeedbackService) UserShortlist(userID int) ([]UserShortlistRow, error) {
	var rows []UserShortlistRow
	err := s.db.Raw(`
		SELECT s.id AS startup_id, s.startup_name, s.sector, s.city, s.year, s.amount, sh.created_at
		FROM shortlists sh
		JOIN startups s ON s.id = sh.startup_id
		WHERE sh.user_id = ?
		ORDER BY sh.created_at DESC`, userID).Scan(&rows).Error
	return rows, err
}
