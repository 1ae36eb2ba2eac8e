package analytics

import (
	"sort"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

// Order controls ranking direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Top filters, sorts and slices a collection of entities. The filter runs
// before the sort and the limit. Ties on the primary metric break on the
// identity key ascending, so repeated calls over the same input always
// produce the same ordering. Fewer qualifying entities than limit yields a
// shorter (possibly empty) slice, never an error.
func Top[T any](items []T, id func(T) string, metric func(T) float64, order Order, limit int, filter func(T) bool) []T {
	selected := make([]T, 0, len(items))
	for _, item := range items {
		if filter == nil || filter(item) {
			selected = append(selected, item)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		mi, mj := metric(selected[i]), metric(selected[j])
		if mi == mj {
			return id(selected[i]) < id(selected[j])
		}
		if order == OrderAsc {
			return mi < mj
		}
		return mi > mj
	})
	if limit >= 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// CourseStat is the flat per-course projection used by ranked views.
type CourseStat struct {
	CourseID       string              `json:"courseId"`
	Title          string              `json:"title"`
	Status         models.CourseStatus `json:"status"`
	Students       int                 `json:"students"`
	Revenue        float64             `json:"revenue"`
	AverageRating  float64             `json:"averageRating"`
	RatingCount    int                 `json:"ratingCount"`
	CompletionRate float64             `json:"completionRate"`
}

// StudentStat is the flat per-student projection across an instructor scope.
type StudentStat struct {
	StudentID       string  `json:"studentId"`
	Name            string  `json:"name"`
	Enrollments     int     `json:"enrollments"`
	Completed       int     `json:"completed"`
	AverageProgress float64 `json:"averageProgress"`
}

// CourseStats projects each course onto its ranked-view metrics, recomputing
// every derived value from the raw collections.
func CourseStats(courses []models.Course) []CourseStat {
	stats := make([]CourseStat, 0, len(courses))
	for _, course := range courses {
		stats = append(stats, CourseStat{
			CourseID:      course.ID,
			Title:         course.Title,
			Status:        course.Status,
			Students:      len(course.Enrollments),
			Revenue:       course.Price * float64(len(course.Enrollments)),
			AverageRating: AverageCourseRating(course),
			RatingCount:   len(course.Ratings),
			CompletionRate: Share(course.Enrollments, func(e models.Enrollment) bool {
				return e.Completed
			}),
		})
	}
	return stats
}

// StudentStats folds every enrollment in the scope into one record per
// student, ordered deterministically by student ID.
func StudentStats(courses []models.Course) []StudentStat {
	type acc struct {
		name        string
		enrollments int
		completed   int
		progressSum int
	}
	byStudent := make(map[string]acc)
	for _, course := range courses {
		for _, e := range course.Enrollments {
			current := byStudent[e.StudentID]
			if current.name == "" {
				current.name = e.StudentName
			}
			current.enrollments++
			if e.Completed {
				current.completed++
			}
			current.progressSum += e.Progress
			byStudent[e.StudentID] = current
		}
	}

	ids := make([]string, 0, len(byStudent))
	for id := range byStudent {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stats := make([]StudentStat, 0, len(ids))
	for _, id := range ids {
		a := byStudent[id]
		stats = append(stats, StudentStat{
			StudentID:       id,
			Name:            a.name,
			Enrollments:     a.enrollments,
			Completed:       a.completed,
			AverageProgress: round2(Ratio(float64(a.progressSum), float64(a.enrollments))),
		})
	}
	return stats
}

// NeedsAttention builds the composite filter for under-performing courses:
// low completion over at least one enrollment, or a poor average over at
// least one rating. Courses with no signal on an arm are not flagged by it.
func NeedsAttention(completionBelow, ratingBelow float64) func(CourseStat) bool {
	return func(stat CourseStat) bool {
		if stat.Students > 0 && stat.CompletionRate < completionBelow {
			return true
		}
		return stat.RatingCount > 0 && stat.AverageRating < ratingBelow
	}
}
