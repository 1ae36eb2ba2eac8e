package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursepulse/coursepulse-api/internal/service"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
	"github.com/coursepulse/coursepulse-api/pkg/response"
)

type exportService interface {
	CourseBreakdown(ctx context.Context, instructorID string, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves downloadable report files.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// CourseBreakdown godoc
// @Summary Download the per-course breakdown
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "File format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /analytics/export [get]
func (h *ExportHandler) CourseBreakdown(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.service.CourseBreakdown(c.Request.Context(), claims.UserID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
