package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardRoundsAveragesAndKeepsOrder(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`ORDER BY avg_rating DESC, rating_count DESC`),
			columns: []string{"startup_id", "startup_name", "avg_rating", "rating_count"},
			rows: [][]driver.Value{
				{int64(2), "Globex", float64(4.666666666), int64(3)},
				{int64(1), "Acme", float64(4.5), int64(2)},
				{int64(3), "Initech", float64(4.5), int64(1)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	entries, err := NewLeaderboardService(db).Leaderboard()
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())

	require.Len(t, entries, 3)
	assert.Equal(t, "Globex", entries[0].StartupName)
	assert.Equal(t, 4.67, entries[0].AvgRating)
	assert.Equal(t, 3, entries[0].RatingCount)
	assert.Equal(t, "Acme", entries[1].StartupName)
	assert.Equal(t, "Initech", entries[2].StartupName)
}

func TestLeaderboardEmptyWhenNothingRated(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`ORDER BY avg_rating DESC, rating_count DESC`),
			columns: []string{"startup_id", "startup_name", "avg_rating", "rating_count"},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	entries, err := NewLeaderboardService(db).Leaderboard()
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())
	assert.Empty(t, entries)
}

func TestStatsForUserCountsBothTables(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `?ratings`? WHERE user_id = \\?"),
			args:    []driver.Value{int64(3)},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(4)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `?shortlists`? WHERE user_id = \\?"),
			args:    []driver.Value{int64(3)},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(2)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	stats, err := NewLeaderboardService(db).StatsForUser(3)
	require.NoError(t, err)
	require.NoError(t, state.verifyComplete())

	assert.Equal(t, int64(4), stats.RatingsCount)
	assert.Equal(t, int64(2), stats.ShortlistCount)
}
