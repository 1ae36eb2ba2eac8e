package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/gamification"
	"github.com/coursepulse/coursepulse-api/internal/models"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
)

// StreakRepository persists activity streak state.
type StreakRepository interface {
	Get(ctx context.Context, instructorID string) (models.StreakState, error)
	Advance(ctx context.Context, instructorID string, day time.Time) (models.StreakState, error)
}

// LeaderboardRepository ranks instructors in the shared comparison set.
type LeaderboardRepository interface {
	Position(ctx context.Context, instructorID, category string) (models.LeaderboardPosition, error)
	UpdateScore(ctx context.Context, instructorID string, points float64) error
}

// GamificationService assembles instructor progression snapshots and records
// qualifying activity. The leaderboard is a best-effort collaborator: when it
// is unreachable the snapshot ships without a position rather than failing.
type GamificationService struct {
	courses     ReportCourseRepository
	streaks     StreakRepository
	leaderboard LeaderboardRepository
	cache       *CacheService
	category    string
	cacheTTL    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewGamificationService constructs a GamificationService.
func NewGamificationService(courses ReportCourseRepository, streaks StreakRepository, leaderboard LeaderboardRepository, cache *CacheService, category string, cacheTTL time.Duration, logger *zap.Logger) *GamificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GamificationService{
		courses:     courses,
		streaks:     streaks,
		leaderboard: leaderboard,
		cache:       cache,
		category:    category,
		cacheTTL:    cacheTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *GamificationService) WithClock(now func() time.Time) *GamificationService {
	s.now = now
	return s
}

// Snapshot builds the full progression payload for an instructor.
func (s *GamificationService) Snapshot(ctx context.Context, instructorID string) (*dto.GamificationSnapshot, bool, error) {
	cacheKey := fmt.Sprintf("gamification:snapshot:%s", instructorID)

	var cached dto.GamificationSnapshot
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load instructor courses")
	}
	counters := countersFromCourses(courses)

	streak, err := s.streaks.Get(ctx, instructorID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load streak state")
	}

	experience := gamification.Experience(counters)
	snapshot := &dto.GamificationSnapshot{
		Level:        gamification.Level(counters),
		Experience:   experience,
		Counters:     counters,
		Achievements: gamification.Achievements(counters),
		Badges:       gamification.Badges(counters),
		Streak:       streakInfo(streak),
		Leaderboard:  s.position(ctx, instructorID),
	}

	// keep the comparison set roughly current on every read
	if err := s.leaderboard.UpdateScore(ctx, instructorID, float64(experience)); err != nil {
		s.logger.Warn("leaderboard score not updated", zap.String("instructorId", instructorID), zap.Error(err))
	}

	if err := s.cache.Set(ctx, cacheKey, snapshot, s.cacheTTL); err != nil {
		s.logger.Warn("gamification snapshot not cached", zap.String("instructorId", instructorID), zap.Error(err))
	}
	return snapshot, false, nil
}

// RecordActivity advances the instructor's streak for a qualifying activity
// happening now.
func (s *GamificationService) RecordActivity(ctx context.Context, instructorID string) (*dto.ActivityResult, error) {
	day := gamification.ActivityDay(s.now())
	state, err := s.streaks.Advance(ctx, instructorID, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "advance streak")
	}

	if err := s.cache.Invalidate(ctx, fmt.Sprintf("gamification:snapshot:%s", instructorID)); err != nil {
		s.logger.Warn("gamification snapshot not invalidated", zap.String("instructorId", instructorID), zap.Error(err))
	}
	return &dto.ActivityResult{Streak: streakInfo(state)}, nil
}

func (s *GamificationService) position(ctx context.Context, instructorID string) *models.LeaderboardPosition {
	position, err := s.leaderboard.Position(ctx, instructorID, s.category)
	if err != nil {
		if err != appErrors.ErrUnavailable {
			s.logger.Warn("leaderboard position unavailable", zap.String("instructorId", instructorID), zap.Error(err))
		}
		return nil
	}
	return &position
}

func countersFromCourses(courses []models.Course) gamification.Counters {
	var counters gamification.Counters
	counters.TotalCourses = len(courses)
	for _, course := range courses {
		counters.TotalStudents += len(course.Enrollments)
		counters.RatingCount += len(course.Ratings)
		for _, rating := range course.Ratings {
			counters.RatingSum += rating.Rating
		}
	}
	return counters
}

func streakInfo(state models.StreakState) dto.StreakInfo {
	info := dto.StreakInfo{
		Current: state.CurrentStreak,
		Longest: state.LongestStreak,
	}
	if !state.LastActiveOn.IsZero() {
		info.LastActiveOn = state.LastActiveOn.UTC().Format("2006-01-02")
	}
	return info
}
