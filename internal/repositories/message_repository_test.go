package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageRows = []string{"id", "sender_id", "sender_name", "content", "room_id", "attachment_url", "attachment_type", "edited_at", "created_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestHistoryExcludesCursorAndReversesToAscending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	cursor := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	newer := cursor.Add(-time.Minute)
	older := cursor.Add(-2 * time.Minute)

	rows := sqlmock.NewRows(messageRows).
		AddRow(12, 7, "Maria", "newer", "dm-3-7", "", "", nil, newer).
		AddRow(11, 3, "Juan", "older", "dm-3-7", "", "", nil, older)

	mock.ExpectQuery(`(?s)created_at < \$2.*ORDER BY created_at DESC`).
		WithArgs("dm-3-7", cursor, 50).
		WillReturnRows(rows)

	msgs, err := repo.History(context.Background(), "dm-3-7", &cursor, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, 11, msgs[0].ID, "page must come back oldest first")
	assert.Equal(t, 12, msgs[1].ID)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryWithoutCursorPassesNull(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepo(db)

	mock.ExpectQuery(`(?s)\$2::timestamptz IS NULL OR created_at < \$2`).
		WithArgs("dm-3-7", nil, 50).
		WillReturnRows(sqlmock.NewRows(messageRows))

	msgs, err := repo.History(context.Background(), "dm-3-7", nil, 50)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
