package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/middleware"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
	"github.com/coursepulse/coursepulse-api/pkg/response"
)

type gamificationService interface {
	Snapshot(ctx context.Context, instructorID string) (*dto.GamificationSnapshot, bool, error)
	RecordActivity(ctx context.Context, instructorID string) (*dto.ActivityResult, error)
}

// GamificationHandler exposes the progression endpoints.
type GamificationHandler struct {
	service gamificationService
}

// NewGamificationHandler constructs the handler.
func NewGamificationHandler(service gamificationService) *GamificationHandler {
	return &GamificationHandler{service: service}
}

// Snapshot godoc
// @Summary Instructor progression snapshot
// @Tags Gamification
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /gamification [get]
func (h *GamificationHandler) Snapshot(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	snapshot, cacheHit, err := h.service.Snapshot(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, snapshot, middleware.ExtractMeta(c))
}

// RecordActivity godoc
// @Summary Record a qualifying activity for the streak
// @Tags Gamification
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /gamification/activity [post]
func (h *GamificationHandler) RecordActivity(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.RecordActivity(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
