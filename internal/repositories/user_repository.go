package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"onemsu-server/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const uniqueViolation = "23505"

// UserRepository abstracts account persistence.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash, campus string) (models.User, error)
	GetByID(ctx context.Context, userID int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (models.User, error)
}

const userColumns = `id, name, email, password_hash, campus, avatar, student_id, program, year_level, department, bio, cover_photo, created_at`

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new account. A duplicate email maps to ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, campus string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (name, email, password_hash, campus) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		name, email, passwordHash, campus).StructScan(&user)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetByEmail fetches an account by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile overwrites the mutable profile fields and returns the row.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users SET name=$1, campus=$2, avatar=$3, student_id=$4, program=$5, year_level=$6, department=$7, bio=$8, cover_photo=$9
         WHERE id=$10 RETURNING `+userColumns,
		upd.Name, upd.Campus, upd.Avatar, upd.StudentID, upd.Program, upd.YearLevel, upd.Department, upd.Bio, upd.CoverPhoto,
		userID).StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}
