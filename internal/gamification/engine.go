// Package gamification derives the instructor progression layer (level,
// experience, achievements, badges, streaks) from cumulative counters. Apart
// from the streak transition, every function is a pure, idempotent mapping of
// a counter snapshot: evaluating twice with unchanged counters yields
// identical results.
package gamification

import (
	"time"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

// Counters is the cumulative snapshot the rules evaluate against.
type Counters struct {
	TotalStudents int `json:"totalStudents"`
	TotalCourses  int `json:"totalCourses"`
	RatingSum     int `json:"ratingSum"`
	RatingCount   int `json:"ratingCount"`
}

// AverageRating returns the mean rating, 0 when nothing has been rated.
func (c Counters) AverageRating() float64 {
	if c.RatingCount == 0 {
		return 0
	}
	return float64(c.RatingSum) / float64(c.RatingCount)
}

const levelDivisor = 1000

// Level maps counters onto an instructor level. The weighted sum only grows
// as counters grow, so the level is monotonically non-decreasing.
func Level(c Counters) int {
	score := float64(c.TotalStudents)*10 + float64(c.TotalCourses)*100 + c.AverageRating()*20
	return int(score/levelDivisor) + 1
}

// Experience is the instructor's XP total; monotonic for the same reason.
func Experience(c Counters) int {
	return c.TotalStudents*10 + c.TotalCourses*100
}

// Achievement is a threshold rule outcome at evaluation time.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

type achievementRule struct {
	id          string
	name        string
	description string
	earned      func(Counters) bool
}

// Rules are evaluated independently in this fixed order.
var achievementRules = []achievementRule{
	{"first-course", "First Course", "Publish your first course", func(c Counters) bool {
		return c.TotalCourses >= 1
	}},
	{"course-creator", "Course Creator", "Publish 5 courses", func(c Counters) bool {
		return c.TotalCourses >= 5
	}},
	{"course-master", "Course Master", "Publish 10 courses", func(c Counters) bool {
		return c.TotalCourses >= 10
	}},
	{"rising-educator", "Rising Educator", "Reach 100 students", func(c Counters) bool {
		return c.TotalStudents >= 100
	}},
	{"student-magnet", "Student Magnet", "Reach 1000 students", func(c Counters) bool {
		return c.TotalStudents >= 1000
	}},
	{"highly-rated", "Highly Rated", "Hold a 4.5 average over 10+ ratings", func(c Counters) bool {
		return c.RatingCount >= 10 && c.AverageRating() >= 4.5
	}},
}

// Achievements evaluates every rule against the snapshot.
func Achievements(c Counters) []Achievement {
	result := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		result = append(result, Achievement{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Earned:      rule.earned(c),
		})
	}
	return result
}

// Badge is a tiered recognition derived from course count and rating quality.
type Badge struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Earned bool   `json:"earned"`
}

type badgeRule struct {
	id     string
	name   string
	earned func(Counters) bool
}

var badgeRules = []badgeRule{
	{"creator-bronze", "Bronze Creator", func(c Counters) bool { return c.TotalCourses >= 1 }},
	{"creator-silver", "Silver Creator", func(c Counters) bool { return c.TotalCourses >= 5 }},
	{"creator-gold", "Gold Creator", func(c Counters) bool { return c.TotalCourses >= 10 }},
	{"quality-star", "Quality Star", func(c Counters) bool {
		return c.RatingCount >= 5 && c.AverageRating() >= 4.0
	}},
	{"quality-champion", "Quality Champion", func(c Counters) bool {
		return c.RatingCount >= 10 && c.AverageRating() >= 4.5
	}},
}

// Badges evaluates every badge rule against the snapshot.
func Badges(c Counters) []Badge {
	result := make([]Badge, 0, len(badgeRules))
	for _, rule := range badgeRules {
		result = append(result, Badge{ID: rule.id, Name: rule.name, Earned: rule.earned(c)})
	}
	return result
}

// AdvanceStreak applies the streak transition for a qualifying activity at
// activityAt: activity on the day after LastActiveOn extends the streak,
// activity on the same day is a no-op, anything else resets the current
// streak to 1. LongestStreak never decreases.
func AdvanceStreak(state models.StreakState, activityAt time.Time) models.StreakState {
	day := ActivityDay(activityAt)

	switch {
	case state.CurrentStreak == 0:
		state.CurrentStreak = 1
	case day.Equal(state.LastActiveOn):
		return state
	case day.Equal(state.LastActiveOn.AddDate(0, 0, 1)):
		state.CurrentStreak++
	default:
		state.CurrentStreak = 1
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	state.LastActiveOn = day
	return state
}

// ActivityDay truncates a timestamp to its UTC calendar day, the streak's
// qualifying period.
func ActivityDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
