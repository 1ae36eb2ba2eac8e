package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/coursepulse/coursepulse-api/internal/models"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
)

// LeaderboardRepository ranks instructors on a Redis sorted set keyed by
// experience points. The set is maintained best-effort; readers must treat
// its contents as possibly stale.
type LeaderboardRepository struct {
	client *redis.Client
	key    string
}

// NewLeaderboardRepository constructs a leaderboard repository over the given
// sorted-set key.
func NewLeaderboardRepository(client *redis.Client, key string) *LeaderboardRepository {
	return &LeaderboardRepository{client: client, key: key}
}

// Position returns the instructor's 1-based rank and score. An instructor
// absent from the set, or a nil client, yields ErrUnavailable.
func (r *LeaderboardRepository) Position(ctx context.Context, instructorID, category string) (models.LeaderboardPosition, error) {
	if r.client == nil {
		return models.LeaderboardPosition{}, appErrors.ErrUnavailable
	}

	rank, err := r.client.ZRevRank(ctx, r.key, instructorID).Result()
	if err != nil {
		if err == redis.Nil {
			return models.LeaderboardPosition{}, appErrors.ErrUnavailable
		}
		return models.LeaderboardPosition{}, fmt.Errorf("leaderboard rank for %s: %w", instructorID, err)
	}

	score, err := r.client.ZScore(ctx, r.key, instructorID).Result()
	if err != nil {
		return models.LeaderboardPosition{}, fmt.Errorf("leaderboard score for %s: %w", instructorID, err)
	}

	total, err := r.client.ZCard(ctx, r.key).Result()
	if err != nil {
		return models.LeaderboardPosition{}, fmt.Errorf("leaderboard size: %w", err)
	}

	return models.LeaderboardPosition{
		Position:          int(rank) + 1,
		TotalParticipants: int(total),
		Category:          category,
		Points:            score,
	}, nil
}

// UpdateScore writes the instructor's current points into the set.
func (r *LeaderboardRepository) UpdateScore(ctx context.Context, instructorID string, points float64) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.ZAdd(ctx, r.key, redis.Z{Score: points, Member: instructorID}).Err(); err != nil {
		return fmt.Errorf("leaderboard update for %s: %w", instructorID, err)
	}
	return nil
}
