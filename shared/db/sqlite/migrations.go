package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// migration represents a single database migration
type migration struct {
	version int
	name    string
	up      string
}

// migrations is the ordered list of all database migrations
// Each migration should be idempotent and safe to run multiple times
var migrations = []migration{
	{
		version: 1,
		name:    "create_users_table",
		up: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				image TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL
			);
		`,
	},
	{
		version: 2,
		name:    "create_posts_table",
		up: `
			CREATE TABLE IF NOT EXISTS posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				content_html TEXT NOT NULL,
				author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				hidden INTEGER NOT NULL DEFAULT 0,
				updated_at TIMESTAMP,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_posts_created_at
			ON posts(created_at DESC);

			CREATE INDEX IF NOT EXISTS idx_posts_author_id
			ON posts(author_id);
		`,
	},
	{
		version: 3,
		name:    "create_likes_table",
		up: `
			CREATE TABLE IF NOT EXISTS likes (
				user_id INTEGER NOT NULL,
				post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
				created_at TIMESTAMP NOT NULL,
				PRIMARY KEY (user_id, post_id)
			);

			CREATE INDEX IF NOT EXISTS idx_likes_post_id
			ON likes(post_id);
		`,
	},
	{
		version: 4,
		name:    "create_comments_table",
		up: `
			CREATE TABLE IF NOT EXISTS comments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
				author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_comments_post_id
			ON comments(post_id);
		`,
	},
}

// runMigrations executes all pending migrations
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	currentVersion := 0
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, m := range migrations {
		if m.version <= currentVersion {
			continue // Already applied
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", m.version, err)
		}

		_, err = tx.Exec(m.up)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %d (%s): %w", m.version, m.name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.version,
			m.name,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		log.Info().Int("version", m.version).Str("name", m.name).Msg("Applied migration")
	}

	return nil
}
