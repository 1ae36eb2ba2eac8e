package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursepulse/coursepulse-api/internal/models"
)

func courseColumns() []string {
	return []string{"id", "instructor_id", "title", "price", "status", "created_at", "updated_at"}
}

func TestListByInstructorHydratesCollections(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, 0, 0)

	now := time.Now()
	mock.ExpectQuery("SELECT id, instructor_id, title, price, status, created_at, updated_at").
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows(courseColumns()).
			AddRow("c1", "inst-1", "Go Basics", 50.0, "published", now, now).
			AddRow("c2", "inst-1", "Advanced Go", 80.0, "draft", now, now))

	mock.ExpectQuery("FROM enrollments e").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id", "student_name", "enrolled_at", "progress", "completed", "completed_at"}).
			AddRow("e1", "c1", "s1", "Ana", now, 100, true, now).
			AddRow("e2", "c1", "s2", "Bea", now, 30, false, nil).
			AddRow("e3", "c2", "s1", "Ana", now, 0, false, nil))

	mock.ExpectQuery("FROM ratings rt").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "user_id", "user_name", "rating", "review", "created_at"}).
			AddRow("r1", "c1", "s1", "Ana", 5, "great", now))

	mock.ExpectQuery("FROM sections").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "position"}).
			AddRow("sec1", "c1", "Intro", 1))

	mock.ExpectQuery("FROM lessons").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section_id", "title", "position", "duration_minutes"}).
			AddRow("l1", "sec1", "Hello", 1, 12))

	courses, err := repo.ListByInstructor(context.Background(), "inst-1")
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Len(t, courses[0].Enrollments, 2)
	assert.Equal(t, "Ana", courses[0].Enrollments[0].StudentName)
	assert.Len(t, courses[0].Ratings, 1)
	require.Len(t, courses[0].Sections, 1)
	assert.Len(t, courses[0].Sections[0].Lessons, 1)

	assert.Len(t, courses[1].Enrollments, 1)
	assert.Empty(t, courses[1].Ratings)
	assert.Empty(t, courses[1].Sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByInstructorEmptyScope(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, 0, 0)

	mock.ExpectQuery("SELECT id, instructor_id, title, price, status, created_at, updated_at").
		WithArgs("inst-9").
		WillReturnRows(sqlmock.NewRows(courseColumns()))

	courses, err := repo.ListByInstructor(context.Background(), "inst-9")
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db, 0, 0)

	now := time.Now()
	mock.ExpectQuery("FROM courses WHERE id").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(courseColumns()).
			AddRow("c1", "inst-1", "Go Basics", 50.0, "published", now, now))
	mock.ExpectQuery("FROM enrollments e").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id", "student_name", "enrolled_at", "progress", "completed", "completed_at"}))
	mock.ExpectQuery("FROM ratings rt").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "user_id", "user_name", "rating", "review", "created_at"}))
	mock.ExpectQuery("FROM sections").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "position"}))

	course, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "inst-1", course.InstructorID)
	assert.Equal(t, models.CourseStatusPublished, course.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
