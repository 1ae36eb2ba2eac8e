package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/coursepulse/coursepulse-api/internal/dto"
	"github.com/coursepulse/coursepulse-api/internal/middleware"
	"github.com/coursepulse/coursepulse-api/internal/models"
)

type fakeGamificationSrv struct {
	snapshot    *dto.GamificationSnapshot
	snapshotErr error
	activity    *dto.ActivityResult
	activityErr error
	lastID      string
}

func (f *fakeGamificationSrv) Snapshot(_ context.Context, instructorID string) (*dto.GamificationSnapshot, bool, error) {
	f.lastID = instructorID
	return f.snapshot, false, f.snapshotErr
}

func (f *fakeGamificationSrv) RecordActivity(_ context.Context, instructorID string) (*dto.ActivityResult, error) {
	f.lastID = instructorID
	return f.activity, f.activityErr
}

func TestGamificationSnapshotHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGamificationSrv{snapshot: &dto.GamificationSnapshot{Level: 2, Experience: 1200}}
	handler := NewGamificationHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/gamification", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1", Role: models.RoleInstructor})

	handler.Snapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inst-1", srv.lastID)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(2), envelope.Data["level"])
	assert.Equal(t, float64(1200), envelope.Data["experience"])
	assert.Nil(t, envelope.Data["leaderboard"], "absent position serialises as null")
}

func TestGamificationSnapshotHandlerMissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGamificationHandler(&fakeGamificationSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/gamification", nil)

	handler.Snapshot(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordActivityHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeGamificationSrv{activity: &dto.ActivityResult{Streak: dto.StreakInfo{Current: 4, Longest: 9}}}
	handler := NewGamificationHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/gamification/activity", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "inst-1", Role: models.RoleInstructor})

	handler.RecordActivity(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inst-1", srv.lastID)
}
