package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		counters Counters
		expected int
	}{
		{"empty counters start at level 1", Counters{}, 1},
		{"just below the first threshold", Counters{TotalStudents: 99}, 1},
		{"students alone cross the threshold", Counters{TotalStudents: 100}, 2},
		{"courses weigh ten times a student", Counters{TotalCourses: 10}, 2},
		{
			"mixed counters",
			Counters{TotalStudents: 150, TotalCourses: 5, RatingSum: 45, RatingCount: 10},
			3, // 1500 + 500 + 90 = 2090
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Level(tt.counters))
		})
	}
}

func TestLevelMonotonicity(t *testing.T) {
	prev := 0
	for students := 0; students <= 2000; students += 50 {
		level := Level(Counters{TotalStudents: students, TotalCourses: 3, RatingSum: 40, RatingCount: 10})
		assert.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

func TestExperience(t *testing.T) {
	assert.Equal(t, 0, Experience(Counters{}))
	assert.Equal(t, 1500, Experience(Counters{TotalStudents: 100, TotalCourses: 5}))

	// ratings never feed experience
	assert.Equal(t,
		Experience(Counters{TotalStudents: 10, TotalCourses: 1}),
		Experience(Counters{TotalStudents: 10, TotalCourses: 1, RatingSum: 50, RatingCount: 10}))
}

func TestAchievements(t *testing.T) {
	earned := func(list []Achievement) map[string]bool {
		out := make(map[string]bool, len(list))
		for _, a := range list {
			out[a.ID] = a.Earned
		}
		return out
	}

	t.Run("fresh instructor earns nothing", func(t *testing.T) {
		for id, ok := range earned(Achievements(Counters{})) {
			assert.False(t, ok, id)
		}
	})

	t.Run("thresholds are inclusive", func(t *testing.T) {
		got := earned(Achievements(Counters{TotalCourses: 5, TotalStudents: 100}))
		assert.True(t, got["first-course"])
		assert.True(t, got["course-creator"])
		assert.False(t, got["course-master"])
		assert.True(t, got["rising-educator"])
		assert.False(t, got["student-magnet"])
	})

	t.Run("highly rated needs volume and quality", func(t *testing.T) {
		// 4.5 average but only 9 ratings
		got := earned(Achievements(Counters{RatingSum: 41, RatingCount: 9}))
		assert.False(t, got["highly-rated"])

		got = earned(Achievements(Counters{RatingSum: 45, RatingCount: 10}))
		assert.True(t, got["highly-rated"])
	})

	t.Run("evaluation is idempotent", func(t *testing.T) {
		c := Counters{TotalStudents: 250, TotalCourses: 7, RatingSum: 90, RatingCount: 20}
		assert.Equal(t, Achievements(c), Achievements(c))
	})
}

func TestBadges(t *testing.T) {
	earned := func(list []Badge) map[string]bool {
		out := make(map[string]bool, len(list))
		for _, b := range list {
			out[b.ID] = b.Earned
		}
		return out
	}

	got := earned(Badges(Counters{TotalCourses: 10, RatingSum: 44, RatingCount: 10}))
	assert.True(t, got["creator-bronze"])
	assert.True(t, got["creator-silver"])
	assert.True(t, got["creator-gold"])
	assert.True(t, got["quality-star"])      // avg 4.4 over 10
	assert.False(t, got["quality-champion"]) // below 4.5

	got = earned(Badges(Counters{}))
	for id, ok := range got {
		assert.False(t, ok, id)
	}
}

func TestAdvanceStreak(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad day literal %q: %v", s, err)
		}
		return d
	}

	t.Run("first activity starts a streak", func(t *testing.T) {
		next := AdvanceStreak(models.StreakState{InstructorID: "inst-1"}, day("2026-03-02").Add(9*time.Hour))
		assert.Equal(t, 1, next.CurrentStreak)
		assert.Equal(t, 1, next.LongestStreak)
		assert.Equal(t, day("2026-03-02"), next.LastActiveOn)
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		state := models.StreakState{CurrentStreak: 3, LongestStreak: 5, LastActiveOn: day("2026-03-02")}
		next := AdvanceStreak(state, day("2026-03-03"))
		assert.Equal(t, 4, next.CurrentStreak)
		assert.Equal(t, 5, next.LongestStreak)
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		state := models.StreakState{CurrentStreak: 3, LongestStreak: 5, LastActiveOn: day("2026-03-02")}
		next := AdvanceStreak(state, day("2026-03-02").Add(23*time.Hour))
		assert.Equal(t, state, next)
	})

	t.Run("gap resets to one", func(t *testing.T) {
		state := models.StreakState{CurrentStreak: 7, LongestStreak: 7, LastActiveOn: day("2026-03-02")}
		next := AdvanceStreak(state, day("2026-03-05"))
		assert.Equal(t, 1, next.CurrentStreak)
		assert.Equal(t, 7, next.LongestStreak, "longest survives a reset")
	})

	t.Run("increment extends the longest streak", func(t *testing.T) {
		state := models.StreakState{CurrentStreak: 5, LongestStreak: 5, LastActiveOn: day("2026-03-02")}
		next := AdvanceStreak(state, day("2026-03-03"))
		assert.Equal(t, 6, next.CurrentStreak)
		assert.Equal(t, 6, next.LongestStreak)
	})

	t.Run("timestamps map onto UTC days", func(t *testing.T) {
		loc := time.FixedZone("UTC+7", 7*3600)
		// 02:00 local on Mar 3 is still Mar 2 in UTC
		at := time.Date(2026, 3, 3, 2, 0, 0, 0, loc)
		state := models.StreakState{CurrentStreak: 2, LongestStreak: 2, LastActiveOn: day("2026-03-02")}
		next := AdvanceStreak(state, at)
		assert.Equal(t, state, next)
	})
}
