package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            campus TEXT NOT NULL DEFAULT '',
            avatar TEXT NOT NULL DEFAULT '',
            student_id TEXT NOT NULL DEFAULT '',
            program TEXT NOT NULL DEFAULT '',
            year_level TEXT NOT NULL DEFAULT '',
            department TEXT NOT NULL DEFAULT '',
            bio TEXT NOT NULL DEFAULT '',
            cover_photo TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL,
            sender_name TEXT NOT NULL,
            content TEXT NOT NULL,
            room_id TEXT NOT NULL,
            attachment_url TEXT NOT NULL DEFAULT '',
            attachment_type TEXT NOT NULL DEFAULT '',
            edited_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_room_created ON messages (room_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages (sender_id);`,
		`CREATE TABLE IF NOT EXISTS reactions (
            message_id INT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
            user_id INT NOT NULL,
            emoji TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (message_id, user_id, emoji)
        );`,
		`CREATE TABLE IF NOT EXISTS read_receipts (
            user_id INT NOT NULL,
            room_id TEXT NOT NULL,
            last_read TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (user_id, room_id)
        );`,
		`CREATE TABLE IF NOT EXISTS follows (
            follower_id INT NOT NULL,
            followee_id INT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (follower_id, followee_id)
        );`,
		`CREATE TABLE IF NOT EXISTS groups (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            campus TEXT NOT NULL DEFAULT '',
            logo_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS freedom_posts (
            id SERIAL PRIMARY KEY,
            user_id INT,
            alias TEXT NOT NULL,
            content TEXT NOT NULL,
            campus TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            likes INT NOT NULL DEFAULT 0,
            reports INT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS feedback (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS owner_settings (
            id INT PRIMARY KEY,
            site_name TEXT NOT NULL DEFAULT 'ONEMSU',
            maintenance_mode BOOLEAN NOT NULL DEFAULT FALSE,
            messenger_enabled BOOLEAN NOT NULL DEFAULT TRUE,
            confession_enabled BOOLEAN NOT NULL DEFAULT TRUE,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
		`INSERT INTO owner_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
