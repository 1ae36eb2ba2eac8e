package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coursepulse/coursepulse-api/internal/models"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
)

type fakeStreakRepo struct {
	state      models.StreakState
	advanced   []time.Time
	getErr     error
	advanceErr error
}

func (f *fakeStreakRepo) Get(_ context.Context, instructorID string) (models.StreakState, error) {
	if f.getErr != nil {
		return models.StreakState{}, f.getErr
	}
	state := f.state
	state.InstructorID = instructorID
	return state, nil
}

func (f *fakeStreakRepo) Advance(_ context.Context, instructorID string, day time.Time) (models.StreakState, error) {
	if f.advanceErr != nil {
		return models.StreakState{}, f.advanceErr
	}
	f.advanced = append(f.advanced, day)
	next := f.state
	next.InstructorID = instructorID
	next.CurrentStreak++
	next.LastActiveOn = day
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next, nil
}

type fakeLeaderboard struct {
	position    models.LeaderboardPosition
	positionErr error
	scores      map[string]float64
}

func (f *fakeLeaderboard) Position(_ context.Context, _, _ string) (models.LeaderboardPosition, error) {
	if f.positionErr != nil {
		return models.LeaderboardPosition{}, f.positionErr
	}
	return f.position, nil
}

func (f *fakeLeaderboard) UpdateScore(_ context.Context, instructorID string, points float64) error {
	if f.scores == nil {
		f.scores = make(map[string]float64)
	}
	f.scores[instructorID] = points
	return nil
}

func newGamificationService(courses *fakeCourseRepo, streaks *fakeStreakRepo, board *fakeLeaderboard) *GamificationService {
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	return NewGamificationService(courses, streaks, board, cache, "experience", time.Minute, zap.NewNop())
}

func TestGamificationSnapshot(t *testing.T) {
	courses := &fakeCourseRepo{courses: demoCourses()}
	streaks := &fakeStreakRepo{state: models.StreakState{
		CurrentStreak: 3,
		LongestStreak: 8,
		LastActiveOn:  time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}}
	board := &fakeLeaderboard{position: models.LeaderboardPosition{Position: 4, TotalParticipants: 20, Category: "experience", Points: 220}}
	svc := newGamificationService(courses, streaks, board)

	snapshot, cached, err := svc.Snapshot(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.False(t, cached)

	// 2 students x10 + 2 courses x100
	assert.Equal(t, 220, snapshot.Experience)
	assert.Equal(t, 1, snapshot.Level)
	assert.Equal(t, 2, snapshot.Counters.TotalCourses)
	assert.Equal(t, 2, snapshot.Counters.TotalStudents)
	assert.Equal(t, 1, snapshot.Counters.RatingCount)
	assert.Equal(t, 3, snapshot.Streak.Current)
	assert.Equal(t, "2026-03-03", snapshot.Streak.LastActiveOn)
	require.NotNil(t, snapshot.Leaderboard)
	assert.Equal(t, 4, snapshot.Leaderboard.Position)
	assert.Equal(t, 220.0, board.scores["inst-1"], "score pushed on read")

	var earned int
	for _, a := range snapshot.Achievements {
		if a.Earned {
			earned++
		}
	}
	assert.Equal(t, 1, earned, "only first-course at this scale")

	_, cached, err = svc.Snapshot(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestGamificationSnapshotLeaderboardDown(t *testing.T) {
	courses := &fakeCourseRepo{courses: demoCourses()}
	streaks := &fakeStreakRepo{}
	board := &fakeLeaderboard{positionErr: appErrors.ErrUnavailable}
	svc := newGamificationService(courses, streaks, board)

	snapshot, _, err := svc.Snapshot(context.Background(), "inst-1")
	require.NoError(t, err, "leaderboard failures never fail the snapshot")
	assert.Nil(t, snapshot.Leaderboard)
	assert.Equal(t, 220, snapshot.Experience)
}

func TestRecordActivity(t *testing.T) {
	now := time.Date(2026, 3, 4, 18, 30, 0, 0, time.UTC)
	streaks := &fakeStreakRepo{state: models.StreakState{CurrentStreak: 2, LongestStreak: 2}}
	svc := newGamificationService(&fakeCourseRepo{}, streaks, &fakeLeaderboard{}).
		WithClock(func() time.Time { return now })

	result, err := svc.RecordActivity(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Streak.Current)
	assert.Equal(t, 3, result.Streak.Longest)
	require.Len(t, streaks.advanced, 1)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), streaks.advanced[0], "activity recorded on the UTC day")
}

func TestRecordActivityRepositoryFailure(t *testing.T) {
	streaks := &fakeStreakRepo{advanceErr: errors.New("deadlock")}
	svc := newGamificationService(&fakeCourseRepo{}, streaks, &fakeLeaderboard{})

	_, err := svc.RecordActivity(context.Background(), "inst-1")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}
