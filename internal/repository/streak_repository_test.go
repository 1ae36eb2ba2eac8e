package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakGet(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStreakRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"instructor_id", "current_streak", "longest_streak", "last_active_on", "updated_at"}).
		AddRow("inst-1", 4, 9, day, day)
	mock.ExpectQuery("SELECT instructor_id, current_streak, longest_streak, last_active_on, updated_at").
		WithArgs("inst-1").
		WillReturnRows(rows)

	state, err := repo.Get(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, 4, state.CurrentStreak)
	assert.Equal(t, 9, state.LongestStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreakGetMissingRowYieldsZeroState(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStreakRepository(db)

	mock.ExpectQuery("SELECT instructor_id, current_streak, longest_streak, last_active_on, updated_at").
		WithArgs("inst-2").
		WillReturnRows(sqlmock.NewRows([]string{"instructor_id", "current_streak", "longest_streak", "last_active_on", "updated_at"}))

	state, err := repo.Get(context.Background(), "inst-2")
	require.NoError(t, err)
	assert.Equal(t, "inst-2", state.InstructorID)
	assert.Equal(t, 0, state.CurrentStreak)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStreakAdvance(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStreakRepository(db)

	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	previous := day.AddDate(0, 0, -1)
	rows := sqlmock.NewRows([]string{"instructor_id", "current_streak", "longest_streak", "last_active_on", "updated_at"}).
		AddRow("inst-1", 5, 5, day, time.Now())
	mock.ExpectQuery("INSERT INTO instructor_streaks").
		WithArgs("inst-1", day, previous).
		WillReturnRows(rows)

	state, err := repo.Advance(context.Background(), "inst-1", day)
	require.NoError(t, err)
	assert.Equal(t, 5, state.CurrentStreak)
	assert.Equal(t, day, state.LastActiveOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}
