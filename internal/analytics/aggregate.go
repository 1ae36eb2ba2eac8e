package analytics

import (
	"sort"
	"time"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

// Enrollment progress partition. Completed is authoritative for the
// completion bucket; the remaining enrollments split at 10% progress:
// below is a dropoff, at or above is engaged. The three buckets are
// exhaustive and non-overlapping.
const engagementProgressThreshold = 10

// OverviewBlock summarises an instructor scope at a glance.
type OverviewBlock struct {
	TotalCourses     int     `json:"totalCourses"`
	PublishedCourses int     `json:"publishedCourses"`
	DraftCourses     int     `json:"draftCourses"`
	ArchivedCourses  int     `json:"archivedCourses"`
	TotalStudents    int     `json:"totalStudents"`
	TotalRevenue     float64 `json:"totalRevenue"`
	AverageRating    float64 `json:"averageRating"`
	TotalRatings     int     `json:"totalRatings"`
}

// PerformanceBlock carries the ratio-safe progress percentages for a scope.
type PerformanceBlock struct {
	CompletionRate float64 `json:"completionRate"`
	EngagementRate float64 `json:"engagementRate"`
	DropoffRate    float64 `json:"dropoffRate"`
}

// CourseRevenue is the per-course entry of the revenue breakdown.
type CourseRevenue struct {
	CourseID    string  `json:"courseId"`
	Title       string  `json:"title"`
	Enrollments int     `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
}

// RevenueBlock reports total and in-window revenue for a scope. Revenue is
// the simplified price-times-enrollments model; refunds and discounts are
// outside this engine.
type RevenueBlock struct {
	TotalRevenue  float64         `json:"totalRevenue"`
	PeriodRevenue float64         `json:"periodRevenue"`
	ByCourse      []CourseRevenue `json:"byCourse"`
}

// Overview computes the overview block for a course scope. An empty scope
// yields a zero block, never an error.
func Overview(courses []models.Course) OverviewBlock {
	block := OverviewBlock{TotalCourses: len(courses)}
	var ratingSum float64
	for _, course := range courses {
		switch course.Status {
		case models.CourseStatusPublished:
			block.PublishedCourses++
		case models.CourseStatusDraft:
			block.DraftCourses++
		case models.CourseStatusArchived:
			block.ArchivedCourses++
		}
		block.TotalStudents += len(course.Enrollments)
		block.TotalRevenue += course.Price * float64(len(course.Enrollments))
		block.TotalRatings += len(course.Ratings)
		ratingSum += Sum(course.Ratings, func(r models.Rating) float64 { return float64(r.Rating) })
	}
	block.AverageRating = round2(Ratio(ratingSum, float64(block.TotalRatings)))
	return block
}

// Performance computes the completion/engagement/dropoff percentages across
// every enrollment in the scope.
func Performance(courses []models.Course) PerformanceBlock {
	enrollments := collectEnrollments(courses)
	return PerformanceBlock{
		CompletionRate: Share(enrollments, func(e models.Enrollment) bool {
			return e.Completed
		}),
		EngagementRate: Share(enrollments, func(e models.Enrollment) bool {
			return !e.Completed && e.Progress >= engagementProgressThreshold
		}),
		DropoffRate: Share(enrollments, func(e models.Enrollment) bool {
			return !e.Completed && e.Progress < engagementProgressThreshold
		}),
	}
}

// Revenue computes the revenue block. PeriodRevenue counts only enrollments
// whose EnrolledAt falls inside [from, to). The per-course breakdown is
// sorted by revenue descending with course ID as tie-break.
func Revenue(courses []models.Course, from, to time.Time) RevenueBlock {
	block := RevenueBlock{ByCourse: make([]CourseRevenue, 0, len(courses))}
	for _, course := range courses {
		revenue := course.Price * float64(len(course.Enrollments))
		inWindow := Count(course.Enrollments, func(e models.Enrollment) bool {
			return !e.EnrolledAt.Before(from) && e.EnrolledAt.Before(to)
		})
		block.TotalRevenue += revenue
		block.PeriodRevenue += course.Price * float64(inWindow)
		block.ByCourse = append(block.ByCourse, CourseRevenue{
			CourseID:    course.ID,
			Title:       course.Title,
			Enrollments: len(course.Enrollments),
			Revenue:     revenue,
		})
	}
	sort.SliceStable(block.ByCourse, func(i, j int) bool {
		if block.ByCourse[i].Revenue == block.ByCourse[j].Revenue {
			return block.ByCourse[i].CourseID < block.ByCourse[j].CourseID
		}
		return block.ByCourse[i].Revenue > block.ByCourse[j].Revenue
	})
	return block
}

// AverageCourseRating recomputes a single course's rating from its raw
// ratings collection.
func AverageCourseRating(course models.Course) float64 {
	return round2(Average(course.Ratings, func(r models.Rating) float64 {
		return float64(r.Rating)
	}))
}

func collectEnrollments(courses []models.Course) []models.Enrollment {
	var all []models.Enrollment
	for _, course := range courses {
		all = append(all, course.Enrollments...)
	}
	return all
}
