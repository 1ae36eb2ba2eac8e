// Package dto holds the wire shapes returned by the reporting endpoints.
// Field names are camelCase on the wire regardless of how the backing models
// are stored.
package dto

import (
	"time"

	"github.com/coursepulse/coursepulse-api/internal/analytics"
	"github.com/coursepulse/coursepulse-api/internal/models"
)

// TeacherOverviewReport is the instructor dashboard payload.
type TeacherOverviewReport struct {
	Overview    analytics.OverviewBlock    `json:"overview"`
	Performance analytics.PerformanceBlock `json:"performance"`
	Revenue     analytics.RevenueBlock     `json:"revenue"`
	Students    StudentsSection            `json:"students"`
	Courses     CoursesSection             `json:"courses"`
	Engagement  EngagementSection          `json:"engagement"`
}

// StudentsSection ranks the instructor's students by completions.
type StudentsSection struct {
	Total int                     `json:"total"`
	Top   []analytics.StudentStat `json:"top"`
}

// CoursesSection carries the ranked course views.
type CoursesSection struct {
	Top            []analytics.CourseStat `json:"top"`
	NeedsAttention []analytics.CourseStat `json:"needsAttention"`
}

// EngagementSection is the bucketed activity trend over the report window.
type EngagementSection struct {
	Granularity    string            `json:"granularity"`
	Enrollments    []analytics.Point `json:"enrollments"`
	CompletionRate []analytics.Point `json:"completionRate"`
}

// CourseSummary describes the course a single-course report covers.
type CourseSummary struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Status    models.CourseStatus `json:"status"`
	Price     float64             `json:"price"`
	CreatedAt time.Time           `json:"createdAt"`
}

// CurriculumStats summarises the course's section and lesson structure.
type CurriculumStats struct {
	Sections        int `json:"sections"`
	Lessons         int `json:"lessons"`
	DurationMinutes int `json:"durationMinutes"`
}

// ReviewEntry is one recent review on a course.
type ReviewEntry struct {
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseAnalyticsReport is the single-course deep-dive payload.
type CourseAnalyticsReport struct {
	Course        CourseSummary              `json:"course"`
	Overview      analytics.OverviewBlock    `json:"overview"`
	Performance   analytics.PerformanceBlock `json:"performance"`
	Enrollments   EngagementSection          `json:"enrollments"`
	TopStudents   []analytics.StudentStat    `json:"topStudents"`
	RecentReviews []ReviewEntry              `json:"recentReviews"`
	Curriculum    CurriculumStats            `json:"curriculum"`
}
