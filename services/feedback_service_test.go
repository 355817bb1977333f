package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertRatingRejectsOutOfRangeScores(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewFeedbackService(db)
	for _, score := range []int{0, -1, 6, 100} {
		_, err := svc.UpsertRating(1, 2, score, "")
		require.Error(t, err)
		assert.True(t, IsValidation(err), "score %d should fail validation", score)
	}
	// No statement may reach the store for an invalid score.
	require.NoError(t, state.verifyComplete())
}

func TestUpsertRatingOverwritesInPlace(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `ratings`.*ON DUPLICATE KEY UPDATE"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	rating, err := NewFeedbackService(db).UpsertRating(7, 3, 4, "strong team")
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())

	assert.Equal(t, 7, rating.StartupID)
	assert.Equal(t, 3, rating.UserID)
	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, "strong team", rating.Comment)
	assert.False(t, rating.UpdatedAt.IsZero())
}

func TestToggleShortlistAddsWhenAbsent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `shortlists` WHERE startup_id = \\? AND user_id = \\?"),
			columns: []string{"shortlist_id", "startup_id", "user_id", "created_at"},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `shortlists`"),
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	shortlisted, err := NewFeedbackService(db).ToggleShortlist(7, 3)
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())
	assert.True(t, shortlisted)
}

func TestToggleShortlistRemovesWhenPresent(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `shortlists` WHERE startup_id = \\? AND user_id = \\?"),
			columns: []string{"shortlist_id", "startup_id", "user_id", "created_at"},
			rows: [][]driver.Value{
				{int64(11), int64(7), int64(3), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `shortlists` WHERE startup_id = \\? AND user_id = \\?"),
			args:    []driver.Value{int64(7), int64(3)},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	shortlisted, err := NewFeedbackService(db).ToggleShortlist(7, 3)
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())
	assert.False(t, shortlisted)
}

func TestRatingForReturnsNilWhenUnrated(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `ratings` WHERE startup_id = \\? AND user_id = \\?"),
			columns: []string{"rating_id", "startup_id", "user_id", "rating", "comment", "updated_at"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	rating, err := NewFeedbackService(db).RatingFor(7, 3)
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())
	assert.Nil(t, rating)
}

func TestUserRatingsOrdersByRecency(t *testing.T) {
	updated := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`ORDER BY r\.updated_at DESC`),
			args:    []driver.Value{int64(3)},
			columns: []string{"startup_id", "startup_name", "rating", "comment", "updated_at"},
			rows: [][]driver.Value{
				{int64(2), "Globex", int64(5), "", updated},
				{int64(1), "Acme", int64(3), "ok", updated.Add(-time.Hour)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	rows, err := NewFeedbackService(db).UserRatings(3)
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())

	require.Len(t, rows, 2)
	assert.Equal(t, "Globex", rows[0].StartupName)
	assert.Equal(t, 5, rows[0].Rating)
	assert.Equal(t, "Acme", rows[1].StartupName)
	assert.Equal(t, "ok", rows[1].Comment)
}
