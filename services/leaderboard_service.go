package services

import (
	"math"

	"gorm.io/gorm"
)

// LeaderboardService computes rating aggregates.
type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// LeaderboardEntry is one aggregate row: startups ordered by average rating
// descending, ties broken by rating count descending.
type LeaderboardEntry struct {
	StartupID   int     `json:"startup_id"`
	StartupName string  `json:"startup_name"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// UserStats summarizes one user's activity.
type UserStats struct {
	RatingsCount   int64 `json:"ratings_count"`
	ShortlistCount int64 `json:"shortlist_count"`
}

// Leaderboard returns aggregate ratings for every rated startup.
func (s *LeaderboardService) Leaderboard() ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.Raw(`
		SELECT s.id AS startup_id,
		       s.startup_name,
		       AVG(r.rating) AS avg_rating,
		       COUNT(r.rating) AS rating_count
		FROM ratings r
		JOIN startups s ON s.id = r.startup_id
		GROUP BY s.id, s.startup_name
		ORDER BY avg_rating DESC, rating_count DESC`).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].AvgRating = math.Round(entries[i].AvgRating*100) / 100
	}
	return entries, nil
}

// StatsForUser counts the user's ratings and shortlist entries.
func (s *LeaderboardService) StatsForUser(userID int) (*UserStats, error) {
	var stats UserStats
	if err := s.db.Table("ratings").Where("user_id = ?", userID).Count(&stats.RatingsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Table("shortlists").Where("user_id = ?", userID).Count(&stats.ShortlistCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
