package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/coursepulse/coursepulse-api/internal/analytics"
	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/middleware"
	"github.com/coursepulse/coursepulse-api/internal/models"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
)

type fakeReportSrv struct {
	overview      *dto.TeacherOverviewReport
	overviewErr   error
	overviewHit   bool
	course        *dto.CourseAnalyticsReport
	courseErr     error
	lastRange     models.TimeRange
	lastCourseID  string
	lastRequester string
}

func (f *fakeReportSrv) TeacherOverview(_ context.Context, instructorID string, timeRange models.TimeRange) (*dto.TeacherOverviewReport, bool, error) {
	f.lastRequester = instructorID
	f.lastRange = timeRange
	return f.overview, f.overviewHit, f.overviewErr
}

func (f *fakeReportSrv) CourseAnalytics(_ context.Context, courseID, requesterID string, _ models.UserRole, timeRange models.TimeRange) (*dto.CourseAnalyticsReport, bool, error) {
	f.lastCourseID = courseID
	f.lastRequester = requesterID
	f.lastRange = timeRange
	return f.course, false, f.courseErr
}

type responseEnvelope struct {
	Success   bool                   `json:"success"`
	Data      map[string]interface{} `json:"data"`
	TimeRange string                 `json:"timeRange"`
	Meta      map[string]interface{} `json:"meta"`
}

func TestTeacherOverviewHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{
		overview:    &dto.TeacherOverviewReport{Overview: analytics.OverviewBlock{TotalCourses: 3}},
		overviewHit: true,
	}
	handler := NewAnalyticsHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/overview?timeRange=90d", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1", Role: models.RoleInstructor})

	handler.TeacherOverview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inst-1", srv.lastRequester)
	assert.Equal(t, models.TimeRange90d, srv.lastRange)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.True(t, envelope.Success)
	assert.Equal(t, "90d", envelope.TimeRange)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestTeacherOverviewHandlerUnknownRangeFallsBack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{overview: &dto.TeacherOverviewReport{}}
	handler := NewAnalyticsHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/overview?timeRange=yesterday", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1"})

	handler.TeacherOverview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultTimeRange, srv.lastRange)
}

func TestTeacherOverviewHandlerMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAnalyticsHandler(&fakeReportSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/overview", nil)

	handler.TeacherOverview(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCourseAnalyticsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{course: &dto.CourseAnalyticsReport{Course: dto.CourseSummary{ID: "c1"}}}
	handler := NewAnalyticsHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/courses/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1", Role: models.RoleInstructor})

	handler.CourseAnalytics(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", srv.lastCourseID)
}

func TestCourseAnalyticsHandlerForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeReportSrv{courseErr: appErrors.ErrForbidden}
	handler := NewAnalyticsHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/analytics/courses/c1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-2", Role: models.RoleInstructor})

	handler.CourseAnalytics(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.False(t, envelope.Success)
}
