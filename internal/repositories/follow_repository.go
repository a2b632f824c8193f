package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"onemsu-server/internal/models"
)

// FollowRepository manages the follow graph.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID int) error
	Unfollow(ctx context.Context, followerID, followeeID int) error
	Stats(ctx context.Context, targetID, viewerID int) (models.FollowStats, error)
}

// FollowRepo is a sqlx-backed implementation.
type FollowRepo struct {
	db *sqlx.DB
}

// NewFollowRepo constructs a FollowRepo.
func NewFollowRepo(db *sqlx.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Follow inserts an edge. Duplicates are a no-op, not an error.
func (r *FollowRepo) Follow(ctx context.Context, followerID, followeeID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
         ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID)
	return err
}

// Unfollow removes an edge if present.
func (r *FollowRepo) Unfollow(ctx context.Context, followerID, followeeID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id=$1 AND followee_id=$2`,
		followerID, followeeID)
	return err
}

// Stats counts both directions of the graph for targetID. isFollowing is
// false when no viewer is supplied (viewerID <= 0).
func (r *FollowRepo) Stats(ctx context.Context, targetID, viewerID int) (models.FollowStats, error) {
	var stats models.FollowStats
	if err := r.db.GetContext(ctx, &stats.Followers,
		`SELECT COUNT(*) FROM follows WHERE followee_id=$1`, targetID); err != nil {
		return models.FollowStats{}, err
	}
	if err := r.db.GetContext(ctx, &stats.Following,
		`SELECT COUNT(*) FROM follows WHERE follower_id=$1`, targetID); err != nil {
		return models.FollowStats{}, err
	}
	if viewerID > 0 {
		if err := r.db.GetContext(ctx, &stats.IsFollowing,
			`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id=$1 AND followee_id=$2)`,
			viewerID, targetID); err != nil {
			return models.FollowStats{}, err
		}
	}
	return stats, nil
}
