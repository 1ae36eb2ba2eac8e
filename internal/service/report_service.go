package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/coursepulse/coursepulse-api/internal/analytics"
	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/models"
	"github.com/coursepulse/coursepulse-api/pkg/config"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
)

// ReportCourseRepository loads the course scope a report runs over.
type ReportCourseRepository interface {
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// ReportService assembles the analytics reports. Reads go through the cache
// when one is configured; every metric is recomputed from the raw course
// scope on a miss.
type ReportService struct {
	courses ReportCourseRepository
	cache   *CacheService
	metrics *MetricsService
	cfg     config.AnalyticsConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(courses ReportCourseRepository, cache *CacheService, metrics *MetricsService, cfg config.AnalyticsConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		courses: courses,
		cache:   cache,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the time source, used by tests for deterministic
// bucket boundaries.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// TeacherOverview builds the instructor dashboard report for the given time
// range. The bool result reports whether the payload came from cache.
func (s *ReportService) TeacherOverview(ctx context.Context, instructorID string, timeRange models.TimeRange) (*dto.TeacherOverviewReport, bool, error) {
	cacheKey := fmt.Sprintf("report:overview:%s:%s", instructorID, timeRange)

	var cached dto.TeacherOverviewReport
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := s.now()
	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load instructor courses")
	}

	report := s.buildOverview(courses, timeRange)
	if s.metrics != nil {
		s.metrics.ObserveReportBuild("teacher_overview", time.Since(start))
	}

	if err := s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("overview report not cached", zap.String("instructorId", instructorID), zap.Error(err))
	}
	return report, false, nil
}

func (s *ReportService) buildOverview(courses []models.Course, timeRange models.TimeRange) *dto.TeacherOverviewReport {
	now := s.now()
	from, to := timeRange.Window(now)

	courseStats := analytics.CourseStats(courses)
	studentStats := analytics.StudentStats(courses)

	topCourses := analytics.Top(courseStats,
		func(c analytics.CourseStat) string { return c.CourseID },
		func(c analytics.CourseStat) float64 { return float64(c.Students) },
		analytics.OrderDesc, s.cfg.TopCoursesLimit, nil)

	attention := analytics.Top(courseStats,
		func(c analytics.CourseStat) string { return c.CourseID },
		func(c analytics.CourseStat) float64 { return c.CompletionRate },
		analytics.OrderAsc, s.cfg.AttentionLimit,
		analytics.NeedsAttention(s.cfg.AttentionCompletionBelow, s.cfg.AttentionRatingBelow))

	topStudents := analytics.Top(studentStats,
		func(st analytics.StudentStat) string { return st.StudentID },
		func(st analytics.StudentStat) float64 { return float64(st.Completed) },
		analytics.OrderDesc, s.cfg.TopStudentsLimit, nil)

	return &dto.TeacherOverviewReport{
		Overview:    analytics.Overview(courses),
		Performance: analytics.Performance(courses),
		Revenue:     analytics.Revenue(courses, from, to),
		Students: dto.StudentsSection{
			Total: len(studentStats),
			Top:   topStudents,
		},
		Courses: dto.CoursesSection{
			Top:            topCourses,
			NeedsAttention: attention,
		},
		Engagement: s.engagementTrend(courses, timeRange, now),
	}
}

// CourseAnalytics builds the single-course report. The requesting instructor
// must own the course unless they hold the admin role.
func (s *ReportService) CourseAnalytics(ctx context.Context, courseID, requesterID string, requesterRole models.UserRole, timeRange models.TimeRange) (*dto.CourseAnalyticsReport, bool, error) {
	cacheKey := fmt.Sprintf("report:course:%s:%s", courseID, timeRange)

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load course")
	}
	if course.InstructorID != requesterID && requesterRole != models.RoleAdmin {
		return nil, false, appErrors.Clone(appErrors.ErrForbidden, "course belongs to another instructor")
	}

	var cached dto.CourseAnalyticsReport
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := s.now()
	report := s.buildCourseAnalytics(*course, timeRange)
	if s.metrics != nil {
		s.metrics.ObserveReportBuild("course_analytics", time.Since(start))
	}

	if err := s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("course report not cached", zap.String("courseId", courseID), zap.Error(err))
	}
	return report, false, nil
}

const recentReviewLimit = 5

func (s *ReportService) buildCourseAnalytics(course models.Course, timeRange models.TimeRange) *dto.CourseAnalyticsReport {
	now := s.now()
	scope := []models.Course{course}

	topStudents := analytics.Top(analytics.StudentStats(scope),
		func(st analytics.StudentStat) string { return st.StudentID },
		func(st analytics.StudentStat) float64 { return st.AverageProgress },
		analytics.OrderDesc, s.cfg.TopStudentsLimit, nil)

	reviews := make([]dto.ReviewEntry, 0, recentReviewLimit)
	for _, rating := range course.Ratings {
		if len(reviews) == recentReviewLimit {
			break
		}
		reviews = append(reviews, dto.ReviewEntry{
			UserName:  rating.UserName,
			Rating:    rating.Rating,
			Review:    rating.Review,
			CreatedAt: rating.CreatedAt,
		})
	}

	var curriculum dto.CurriculumStats
	curriculum.Sections = len(course.Sections)
	for _, section := range course.Sections {
		curriculum.Lessons += len(section.Lessons)
		for _, lesson := range section.Lessons {
			curriculum.DurationMinutes += lesson.DurationMinutes
		}
	}

	return &dto.CourseAnalyticsReport{
		Course: dto.CourseSummary{
			ID:        course.ID,
			Title:     course.Title,
			Status:    course.Status,
			Price:     course.Price,
			CreatedAt: course.CreatedAt,
		},
		Overview:      analytics.Overview(scope),
		Performance:   analytics.Performance(scope),
		Enrollments:   s.engagementTrend(scope, timeRange, now),
		TopStudents:   topStudents,
		RecentReviews: reviews,
		Curriculum:    curriculum,
	}
}

// engagementTrend buckets enrollments and completions over the range. The
// completion-rate series divides completions by enrollments per bucket, 0
// for empty buckets.
func (s *ReportService) engagementTrend(courses []models.Course, timeRange models.TimeRange, now time.Time) dto.EngagementSection {
	buckets, granularity := timeRange.TrendShape()

	var enrollments []models.Enrollment
	for _, course := range courses {
		enrollments = append(enrollments, course.Enrollments...)
	}

	enrolledSeries := analytics.Series(now, buckets, analytics.Granularity(granularity),
		analytics.CountInWindow(enrollments, func(e models.Enrollment) time.Time { return e.EnrolledAt }))

	completionSeries := analytics.Series(now, buckets, analytics.Granularity(granularity), func(start, end time.Time) float64 {
		inBucket := make([]models.Enrollment, 0)
		for _, e := range enrollments {
			if !e.EnrolledAt.Before(start) && e.EnrolledAt.Before(end) {
				inBucket = append(inBucket, e)
			}
		}
		return analytics.Share(inBucket, func(e models.Enrollment) bool { return e.Completed })
	})

	return dto.EngagementSection{
		Granularity:    granularity,
		Enrollments:    enrolledSeries,
		CompletionRate: completionSeries,
	}
}

// InvalidateInstructor drops every cached report for the instructor.
func (s *ReportService) InvalidateInstructor(ctx context.Context, instructorID string) error {
	return s.cache.Invalidate(ctx, fmt.Sprintf("report:overview:%s:*", instructorID))
}
