package models

import "time"

// StreakState is the persisted per-instructor activity streak. LastActiveOn is
// the UTC calendar day of the most recent qualifying activity.
type StreakState struct {
	InstructorID  string    `db:"instructor_id" json:"instructor_id"`
	CurrentStreak int       `db:"current_streak" json:"current_streak"`
	LongestStreak int       `db:"longest_streak" json:"longest_streak"`
	LastActiveOn  time.Time `db:"last_active_on" json:"last_active_on"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// LeaderboardPosition is the instructor's rank within the global comparison
// set. The backing collaborator carries no freshness guarantee.
type LeaderboardPosition struct {
	Position          int     `json:"position"`
	TotalParticipants int     `json:"totalParticipants"`
	Category          string  `json:"category"`
	Points            float64 `json:"points"`
}
