package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"onemsu-server/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// FreedomRepository manages the anonymous wall.
type FreedomRepository interface {
	CreatePost(ctx context.Context, userID *int, alias, content, campus, imageURL string) (models.FreedomPost, error)
	ListPosts(ctx context.Context, campus string, limit int) ([]models.FreedomPost, error)
	LikePost(ctx context.Context, postID int) (int, error)
	ReportPost(ctx context.Context, postID int) (int, error)
}

const freedomColumns = `id, user_id, alias, content, campus, image_url, likes, reports, created_at`

// FreedomRepo is a sqlx-backed implementation.
type FreedomRepo struct {
	db *sqlx.DB
}

// NewFreedomRepo constructs a FreedomRepo.
func NewFreedomRepo(db *sqlx.DB) *FreedomRepo {
	return &FreedomRepo{db: db}
}

// CreatePost stores an anonymous post. The alias is assigned once here and
// is the only identity ever exposed.
func (r *FreedomRepo) CreatePost(ctx context.Context, userID *int, alias, content, campus, imageURL string) (models.FreedomPost, error) {
	var post models.FreedomPost
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO freedom_posts (user_id, alias, content, campus, image_url)
         VALUES ($1, $2, $3, $4, $5) RETURNING `+freedomColumns,
		userID, alias, content, campus, imageURL).StructScan(&post)
	return post, err
}

// ListPosts returns posts newest first, optionally filtered by campus.
func (r *FreedomRepo) ListPosts(ctx context.Context, campus string, limit int) ([]models.FreedomPost, error) {
	var posts []models.FreedomPost
	err := r.db.SelectContext(ctx, &posts,
		`SELECT `+freedomColumns+` FROM freedom_posts
         WHERE $1 = '' OR campus = $1
         ORDER BY created_at DESC LIMIT $2`,
		campus, limit)
	return posts, err
}

// LikePost increments the like counter and returns the new value.
func (r *FreedomRepo) LikePost(ctx context.Context, postID int) (int, error) {
	return r.bump(ctx, `UPDATE freedom_posts SET likes = likes + 1 WHERE id=$1 RETURNING likes`, postID)
}

// ReportPost increments the report counter and returns the new value.
func (r *FreedomRepo) ReportPost(ctx context.Context, postID int) (int, error) {
	return r.bump(ctx, `UPDATE freedom_posts SET reports = reports + 1 WHERE id=$1 RETURNING reports`, postID)
}

func (r *FreedomRepo) bump(ctx context.Context, query string, postID int) (int, error) {
	var count int
	rows, err := r.db.QueryxContext(ctx, query, postID)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, ErrPostNotFound
	}
	if err := rows.Scan(&count); err != nil {
		return 0, err
	}
	return count, rows.Err()
}
