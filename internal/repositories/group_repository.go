package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"onemsu-server/internal/models"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupRepository abstracts the group directory.
type GroupRepository interface {
	CreateGroup(ctx context.Context, name, description, campus, logoURL string) (models.Group, error)
	ListGroups(ctx context.Context, campus string) ([]models.Group, error)
	GetGroup(ctx context.Context, groupID int) (models.Group, error)
}

// GroupRepo is a sqlx implementation of GroupRepository.
type GroupRepo struct {
	db *sqlx.DB
}

// NewGroupRepo constructs a GroupRepo.
func NewGroupRepo(db *sqlx.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// CreateGroup adds a directory entry.
func (r *GroupRepo) CreateGroup(ctx context.Context, name, description, campus, logoURL string) (models.Group, error) {
	var group models.Group
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO groups (name, description, campus, logo_url) VALUES ($1, $2, $3, $4)
         RETURNING id, name, description, campus, logo_url, created_at`,
		name, description, campus, logoURL).StructScan(&group)
	return group, err
}

// ListGroups returns directory entries, optionally filtered by campus.
func (r *GroupRepo) ListGroups(ctx context.Context, campus string) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.SelectContext(ctx, &groups,
		`SELECT id, name, description, campus, logo_url, created_at FROM groups
         WHERE $1 = '' OR campus = $1
         ORDER BY name ASC`,
		campus)
	return groups, err
}

// GetGroup fetches a single directory entry.
func (r *GroupRepo) GetGroup(ctx context.Context, groupID int) (models.Group, error) {
	var group models.Group
	err := r.db.GetContext(ctx, &group,
		`SELECT id, name, description, campus, logo_url, created_at FROM groups WHERE id=$1`, groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	return group, err
}
