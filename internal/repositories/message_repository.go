package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"onemsu-server/internal/models"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("not the message owner")
)

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, senderID int, senderName, content, roomID, attachmentURL, attachmentType string) (models.Message, error)
	History(ctx context.Context, roomID string, before *time.Time, limit int) ([]models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	EditMessage(ctx context.Context, messageID, requesterID int, content string) (models.Message, error)
	DeleteMessage(ctx context.Context, messageID, requesterID int) error
	RenameSender(ctx context.Context, userID int, newName string) error
	FeedForUser(ctx context.Context, userID, limit int) ([]models.Message, error)
}

const messageColumns = `id, sender_id, sender_name, content, room_id, attachment_url, attachment_type, edited_at, created_at`

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message. Rooms are implicit in the id namespace,
// so no room existence check is made.
func (r *MessageRepo) CreateMessage(ctx context.Context, senderID int, senderName, content, roomID, attachmentURL, attachmentType string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (sender_id, sender_name, content, room_id, attachment_url, attachment_type)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+messageColumns,
		senderID, senderName, content, roomID, attachmentURL, attachmentType).StructScan(&msg)
	return msg, err
}

// History returns up to limit messages of a room in ascending time order.
// When before is set only strictly older messages are returned, so callers
// page backward by echoing the oldest timestamp of their current window.
func (r *MessageRepo) History(ctx context.Context, roomID string, before *time.Time, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages
         WHERE room_id=$1 AND ($2::timestamptz IS NULL OR created_at < $2)
         ORDER BY created_at DESC LIMIT $3`,
		roomID, before, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetMessage retrieves a single message.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT `+messageColumns+` FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// EditMessage updates the content and stamps edited_at, sender only.
func (r *MessageRepo) EditMessage(ctx context.Context, messageID, requesterID int, content string) (models.Message, error) {
	existing, err := r.GetMessage(ctx, messageID)
	if err != nil {
		return models.Message{}, err
	}
	if existing.SenderID != requesterID {
		return models.Message{}, ErrNotMessageOwner
	}

	var msg models.Message
	err = r.db.QueryRowxContext(ctx,
		`UPDATE messages SET content=$1, edited_at=NOW() WHERE id=$2 RETURNING `+messageColumns,
		content, messageID).StructScan(&msg)
	return msg, err
}

// DeleteMessage removes a message and its reactions, sender only. Reactions
// go first so a failed delete never leaves orphaned rows.
func (r *MessageRepo) DeleteMessage(ctx context.Context, messageID, requesterID int) error {
	existing, err := r.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if existing.SenderID != requesterID {
		return ErrNotMessageOwner
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM reactions WHERE message_id=$1`, messageID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM messages WHERE id=$1`, messageID); err != nil {
		return err
	}
	return tx.Commit()
}

// RenameSender rewrites the denormalized sender_name on every message the
// user ever sent. Accepted write amplification in exchange for join-free
// history reads.
func (r *MessageRepo) RenameSender(ctx context.Context, userID int, newName string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET sender_name=$1 WHERE sender_id=$2`, newName, userID)
	return err
}

// FeedForUser returns the newest messages authored by anyone the user
// follows, across all rooms.
func (r *MessageRepo) FeedForUser(ctx context.Context, userID, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT m.id, m.sender_id, m.sender_name, m.content, m.room_id, m.attachment_url, m.attachment_type, m.edited_at, m.created_at
         FROM messages m
         INNER JOIN follows f ON f.followee_id = m.sender_id
         WHERE f.follower_id=$1
         ORDER BY m.created_at DESC LIMIT $2`,
		userID, limit)
	return msgs, err
}
