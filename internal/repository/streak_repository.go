package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

// StreakRepository persists per-instructor activity streaks. The transition
// rule lives in a single upsert so concurrent activity recordings for the
// same instructor cannot double-increment a day.
type StreakRepository struct {
	db *sqlx.DB
}

// NewStreakRepository constructs a StreakRepository.
func NewStreakRepository(db *sqlx.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get returns the instructor's streak state, or a zero-valued state when no
// activity has ever been recorded.
func (r *StreakRepository) Get(ctx context.Context, instructorID string) (models.StreakState, error) {
	const query = `SELECT instructor_id, current_streak, longest_streak, last_active_on, updated_at
        FROM instructor_streaks WHERE instructor_id = $1`
	var state models.StreakState
	if err := r.db.GetContext(ctx, &state, query, instructorID); err != nil {
		if err == sql.ErrNoRows {
			return models.StreakState{InstructorID: instructorID}, nil
		}
		return models.StreakState{}, fmt.Errorf("get streak for %s: %w", instructorID, err)
	}
	return state, nil
}

// Advance records a qualifying activity on the given UTC day and returns the
// resulting state. Same-day activity leaves the row unchanged, next-day
// activity increments the streak, a gap resets it to 1. The whole transition
// runs as one atomic statement.
func (r *StreakRepository) Advance(ctx context.Context, instructorID string, day time.Time) (models.StreakState, error) {
	const query = `INSERT INTO instructor_streaks (instructor_id, current_streak, longest_streak, last_active_on, updated_at)
        VALUES ($1, 1, 1, $2, NOW())
        ON CONFLICT (instructor_id) DO UPDATE SET
            current_streak = CASE
                WHEN instructor_streaks.last_active_on = $2 THEN instructor_streaks.current_streak
                WHEN instructor_streaks.last_active_on = $3 THEN instructor_streaks.current_streak + 1
                ELSE 1
            END,
            longest_streak = GREATEST(instructor_streaks.longest_streak, CASE
                WHEN instructor_streaks.last_active_on = $2 THEN instructor_streaks.current_streak
                WHEN instructor_streaks.last_active_on = $3 THEN instructor_streaks.current_streak + 1
                ELSE 1
            END),
            last_active_on = $2,
            updated_at = NOW()
        RETURNING instructor_id, current_streak, longest_streak, last_active_on, updated_at`

	previousDay := day.AddDate(0, 0, -1)
	var state models.StreakState
	if err := r.db.GetContext(ctx, &state, query, instructorID, day, previousDay); err != nil {
		return models.StreakState{}, fmt.Errorf("advance streak for %s: %w", instructorID, err)
	}
	return state, nil
}
