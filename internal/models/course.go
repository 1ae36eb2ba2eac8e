package models

import "time"

// CourseStatus enumerates the publication lifecycle of a course.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// Course is a marketplace course together with its nested collections. The
// repository populates Sections, Enrollments and Ratings before the course
// reaches the analytics engine; derived values (average rating, enrollment
// totals) are always recomputed from those collections, never read from
// stored scalar columns.
type Course struct {
	ID           string       `db:"id" json:"id"`
	InstructorID string       `db:"instructor_id" json:"instructor_id"`
	Title        string       `db:"title" json:"title"`
	Price        float64      `db:"price" json:"price"`
	Status       CourseStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`

	Sections    []Section    `json:"sections,omitempty"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
	Ratings     []Rating     `json:"ratings,omitempty"`
}

// Section groups ordered lessons inside a course.
type Section struct {
	ID       string   `db:"id" json:"id"`
	CourseID string   `db:"course_id" json:"course_id"`
	Title    string   `db:"title" json:"title"`
	Position int      `db:"position" json:"position"`
	Lessons  []Lesson `json:"lessons,omitempty"`
}

// Lesson is a single curriculum unit with a duration in minutes.
type Lesson struct {
	ID              string `db:"id" json:"id"`
	SectionID       string `db:"section_id" json:"section_id"`
	Title           string `db:"title" json:"title"`
	Position        int    `db:"position" json:"position"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
}

// Enrollment ties a student to a course with their progress state.
// Completed implies progress == 100 on the write path; the analytics engine
// treats Completed as authoritative for the completion bucket.
type Enrollment struct {
	ID          string     `db:"id" json:"id"`
	CourseID    string     `db:"course_id" json:"course_id"`
	StudentID   string     `db:"student_id" json:"student_id"`
	StudentName string     `db:"student_name" json:"student_name"`
	EnrolledAt  time.Time  `db:"enrolled_at" json:"enrolled_at"`
	Progress    int        `db:"progress" json:"progress"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// Rating is a 1-5 star review left by a user on a course.
type Rating struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	Rating    int       `db:"rating" json:"rating"`
	Review    string    `db:"review" json:"review,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
