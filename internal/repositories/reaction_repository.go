package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"onemsu-server/internal/models"
)

// ReactionRepository manages per-message emoji reactions.
type ReactionRepository interface {
	Toggle(ctx context.Context, messageID, userID int, emoji string) error
	AggregatesFor(ctx context.Context, messageIDs []int, viewerID int) (map[int][]models.ReactionCount, map[int][]string, error)
}

// ReactionRepo is a sqlx-backed implementation.
type ReactionRepo struct {
	db *sqlx.DB
}

// NewReactionRepo constructs a ReactionRepo.
func NewReactionRepo(db *sqlx.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// Toggle removes the (message, user, emoji) triple when it exists, else
// inserts it. Repeating the same call is its own inverse.
func (r *ReactionRepo) Toggle(ctx context.Context, messageID, userID int, emoji string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM reactions WHERE message_id=$1 AND user_id=$2 AND emoji=$3`,
		messageID, userID, emoji)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reactions (message_id, user_id, emoji) VALUES ($1, $2, $3)
         ON CONFLICT (message_id, user_id, emoji) DO NOTHING`,
		messageID, userID, emoji)
	return err
}

// AggregatesFor returns, for a batch of messages, the count per distinct
// emoji and the set of emojis the viewer personally reacted with.
func (r *ReactionRepo) AggregatesFor(ctx context.Context, messageIDs []int, viewerID int) (map[int][]models.ReactionCount, map[int][]string, error) {
	counts := make(map[int][]models.ReactionCount, len(messageIDs))
	mine := make(map[int][]string, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, mine, nil
	}

	type countRow struct {
		MessageID int    `db:"message_id"`
		Emoji     string `db:"emoji"`
		Count     int    `db:"count"`
	}
	var rows []countRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT message_id, emoji, COUNT(*) AS count FROM reactions
         WHERE message_id = ANY($1)
         GROUP BY message_id, emoji
         ORDER BY message_id, emoji`,
		pq.Array(messageIDs))
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		counts[row.MessageID] = append(counts[row.MessageID], models.ReactionCount{Emoji: row.Emoji, Count: row.Count})
	}

	type mineRow struct {
		MessageID int    `db:"message_id"`
		Emoji     string `db:"emoji"`
	}
	var mineRows []mineRow
	err = r.db.SelectContext(ctx, &mineRows,
		`SELECT message_id, emoji FROM reactions
         WHERE message_id = ANY($1) AND user_id=$2
         ORDER BY message_id, emoji`,
		pq.Array(messageIDs), viewerID)
	if err != nil {
		return nil, nil, err
	}
	for _, row := range mineRows {
		mine[row.MessageID] = append(mine[row.MessageID], row.Emoji)
	}

	return counts, mine, nil
}
