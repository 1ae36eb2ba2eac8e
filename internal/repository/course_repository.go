package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

// CourseRepository loads instructor course scopes with their nested
// collections. Reports recompute every derived metric from the raw rows, so
// the repository returns fully hydrated courses rather than pre-aggregated
// columns.
type CourseRepository struct {
	db             *sqlx.DB
	maxCourses     int
	maxEnrollments int
}

// NewCourseRepository constructs a CourseRepository. The caps bound how much
// data a single report may pull; zero or negative values disable the cap.
func NewCourseRepository(db *sqlx.DB, maxCourses, maxEnrollments int) *CourseRepository {
	return &CourseRepository{db: db, maxCourses: maxCourses, maxEnrollments: maxEnrollments}
}

// ListByInstructor returns every course owned by the instructor, hydrated
// with sections, lessons, enrollments and ratings, ordered by creation time.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	query := `SELECT id, instructor_id, title, price, status, created_at, updated_at
        FROM courses WHERE instructor_id = $1 ORDER BY created_at ASC`
	args := []interface{}{instructorID}
	if r.maxCourses > 0 {
		query += " LIMIT $2"
		args = append(args, r.maxCourses)
	}

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses for instructor %s: %w", instructorID, err)
	}
	if len(courses) == 0 {
		return courses, nil
	}
	if err := r.hydrate(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// FindByID fetches a single hydrated course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, instructor_id, title, price, status, created_at, updated_at
        FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	batch := []models.Course{course}
	if err := r.hydrate(ctx, batch); err != nil {
		return nil, err
	}
	return &batch[0], nil
}

// hydrate batch-loads the nested collections for the given courses with one
// query per collection.
func (r *CourseRepository) hydrate(ctx context.Context, courses []models.Course) error {
	ids := make([]string, 0, len(courses))
	index := make(map[string]int, len(courses))
	for i, course := range courses {
		ids = append(ids, course.ID)
		index[course.ID] = i
	}

	enrollments, err := r.enrollmentsByCourse(ctx, ids)
	if err != nil {
		return err
	}
	for _, e := range enrollments {
		i := index[e.CourseID]
		courses[i].Enrollments = append(courses[i].Enrollments, e)
	}

	ratings, err := r.ratingsByCourse(ctx, ids)
	if err != nil {
		return err
	}
	for _, rating := range ratings {
		i := index[rating.CourseID]
		courses[i].Ratings = append(courses[i].Ratings, rating)
	}

	if err := r.attachCurriculum(ctx, courses, ids, index); err != nil {
		return err
	}
	return nil
}

func (r *CourseRepository) enrollmentsByCourse(ctx context.Context, courseIDs []string) ([]models.Enrollment, error) {
	query := `SELECT e.id, e.course_id, e.student_id, u.full_name AS student_name,
        e.enrolled_at, e.progress, e.completed, e.completed_at
        FROM enrollments e
        JOIN users u ON u.id = e.student_id
        WHERE e.course_id IN (?) ORDER BY e.enrolled_at ASC`
	if r.maxEnrollments > 0 {
		query = fmt.Sprintf(`SELECT * FROM (
            SELECT e.id, e.course_id, e.student_id, u.full_name AS student_name,
                e.enrolled_at, e.progress, e.completed, e.completed_at,
                ROW_NUMBER() OVER (PARTITION BY e.course_id ORDER BY e.enrolled_at ASC) AS rn
            FROM enrollments e
            JOIN users u ON u.id = e.student_id
            WHERE e.course_id IN (?)
        ) ranked WHERE rn <= %d ORDER BY enrolled_at ASC`, r.maxEnrollments)
	}

	query, args, err := sqlx.In(query, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("expand enrollment query: %w", err)
	}
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *CourseRepository) ratingsByCourse(ctx context.Context, courseIDs []string) ([]models.Rating, error) {
	query, args, err := sqlx.In(`SELECT rt.id, rt.course_id, rt.user_id, u.full_name AS user_name,
        rt.rating, rt.review, rt.created_at
        FROM ratings rt
        JOIN users u ON u.id = rt.user_id
        WHERE rt.course_id IN (?) ORDER BY rt.created_at DESC`, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("expand rating query: %w", err)
	}
	var ratings []models.Rating
	if err := r.db.SelectContext(ctx, &ratings, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return ratings, nil
}

func (r *CourseRepository) attachCurriculum(ctx context.Context, courses []models.Course, courseIDs []string, index map[string]int) error {
	query, args, err := sqlx.In(`SELECT id, course_id, title, position
        FROM sections WHERE course_id IN (?) ORDER BY position ASC`, courseIDs)
	if err != nil {
		return fmt.Errorf("expand section query: %w", err)
	}
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	if len(sections) == 0 {
		return nil
	}

	sectionIDs := make([]string, 0, len(sections))
	sectionIndex := make(map[string]int, len(sections))
	for i, s := range sections {
		sectionIDs = append(sectionIDs, s.ID)
		sectionIndex[s.ID] = i
	}

	query, args, err = sqlx.In(`SELECT id, section_id, title, position, duration_minutes
        FROM lessons WHERE section_id IN (?) ORDER BY position ASC`, sectionIDs)
	if err != nil {
		return fmt.Errorf("expand lesson query: %w", err)
	}
	var lessons []models.Lesson
	if err := r.db.SelectContext(ctx, &lessons, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}
	for _, lesson := range lessons {
		i := sectionIndex[lesson.SectionID]
		sections[i].Lessons = append(sections[i].Lessons, lesson)
	}

	for _, section := range sections {
		i := index[section.CourseID]
		courses[i].Sections = append(courses[i].Sections, section)
	}
	for i := range courses {
		sort.SliceStable(courses[i].Sections, func(a, b int) bool {
			return courses[i].Sections[a].Position < courses[i].Sections[b].Position
		})
	}
	return nil
}
