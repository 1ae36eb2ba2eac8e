package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/middleware"
	"github.com/coursepulse/coursepulse-api/internal/models"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
	"github.com/coursepulse/coursepulse-api/pkg/response"
)

type reportService interface {
	TeacherOverview(ctx context.Context, instructorID string, timeRange models.TimeRange) (*dto.TeacherOverviewReport, bool, error)
	CourseAnalytics(ctx context.Context, courseID, requesterID string, requesterRole models.UserRole, timeRange models.TimeRange) (*dto.CourseAnalyticsReport, bool, error)
}

// AnalyticsHandler exposes the reporting endpoints.
type AnalyticsHandler struct {
	service reportService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service reportService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// TeacherOverview godoc
// @Summary Instructor dashboard report
// @Tags Analytics
// @Produce json
// @Param timeRange query string false "Lookback window (7d, 30d, 90d, 1y)" default(30d)
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) TeacherOverview(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	timeRange := models.ParseTimeRange(c.Query("timeRange"))

	report, cacheHit, err := h.service.TeacherOverview(c.Request.Context(), claims.UserID, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.Report(c, report, timeRange.String(), middleware.ExtractMeta(c))
}

// CourseAnalytics godoc
// @Summary Single-course analytics report
// @Tags Analytics
// @Produce json
// @Param id path string true "Course ID"
// @Param timeRange query string false "Lookback window (7d, 30d, 90d, 1y)" default(30d)
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /analytics/courses/{id} [get]
func (h *AnalyticsHandler) CourseAnalytics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	courseID := c.Param("id")
	timeRange := models.ParseTimeRange(c.Query("timeRange"))

	report, cacheHit, err := h.service.CourseAnalytics(c.Request.Context(), courseID, claims.UserID, claims.Role, timeRange)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.Report(c, report, timeRange.String(), middleware.ExtractMeta(c))
}
