package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ReceiptRepository tracks per-(user, room) read markers.
type ReceiptRepository interface {
	MarkSeen(ctx context.Context, userID int, roomID string, lastRead time.Time) error
	LastRead(ctx context.Context, userID int, roomID string) (*time.Time, error)
}

// ReceiptRepo is a sqlx-backed implementation.
type ReceiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo constructs a ReceiptRepo.
func NewReceiptRepo(db *sqlx.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

// MarkSeen upserts the read marker. Last writer wins; the value is taken as
// supplied, with no monotonic check, so a client may move its marker back.
func (r *ReceiptRepo) MarkSeen(ctx context.Context, userID int, roomID string, lastRead time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO read_receipts (user_id, room_id, last_read) VALUES ($1, $2, $3)
         ON CONFLICT (user_id, room_id) DO UPDATE SET last_read = EXCLUDED.last_read`,
		userID, roomID, lastRead)
	return err
}

// LastRead returns the stored marker, or nil if the user never marked the
// room seen.
func (r *ReceiptRepo) LastRead(ctx context.Context, userID int, roomID string) (*time.Time, error) {
	var ts time.Time
	err := r.db.GetContext(ctx, &ts,
		`SELECT last_read FROM read_receipts WHERE user_id=$1 AND room_id=$2`,
		userID, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
