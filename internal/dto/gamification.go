package dto

import (
	"github.com/coursepulse/coursepulse-api/internal/gamification"
	"github.com/coursepulse/coursepulse-api/internal/models"
)

// StreakInfo is the wire shape of an instructor's activity streak.
type StreakInfo struct {
	Current      int    `json:"current"`
	Longest      int    `json:"longest"`
	LastActiveOn string `json:"lastActiveOn,omitempty"`
}

// GamificationSnapshot is the full progression payload for an instructor.
// Leaderboard is null when the comparison set has no entry for them or the
// backing store is unreachable.
type GamificationSnapshot struct {
	Level        int                         `json:"level"`
	Experience   int                         `json:"experience"`
	Counters     gamification.Counters       `json:"counters"`
	Achievements []gamification.Achievement  `json:"achievements"`
	Badges       []gamification.Badge        `json:"badges"`
	Streak       StreakInfo                  `json:"streak"`
	Leaderboard  *models.LeaderboardPosition `json:"leaderboard"`
}

// ActivityResult is returned after recording a qualifying activity.
type ActivityResult struct {
	Streak StreakInfo `json:"streak"`
}
