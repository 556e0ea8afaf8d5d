package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func connectTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	database := NewSQLiteDB(&SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func TestRunMigrations(t *testing.T) {
	db := connectTestDB(t).DB()

	for _, table := range []string{"schema_migrations", "users", "posts", "likes", "comments"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check %s table: %v", table, err)
		}
		if count != 1 {
			t.Errorf("%s table not created", table)
		}
	}

	for _, index := range []string{"idx_posts_created_at", "idx_posts_author_id", "idx_likes_post_id", "idx_comments_post_id"} {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to check index %s: %v", index, err)
		}
		if count != 1 {
			t.Errorf("%s index not created", index)
		}
	}

	var version int
	var name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations WHERE version = 1").Scan(&version, &name)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if name != "create_users_table" {
		t.Errorf("name = %q, want %q", name, "create_users_table")
	}

	var latest int
	if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&latest); err != nil {
		t.Fatalf("Failed to query latest version: %v", err)
	}
	if latest != len(migrations) {
		t.Errorf("latest version = %d, want %d", latest, len(migrations))
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	cfg := &SQLiteConfig{Path: dbPath}

	database := NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("First Connect() error = %v", err)
	}
	database.Close()

	database = NewSQLiteDB(cfg)
	if err := database.Connect(); err != nil {
		t.Fatalf("Second Connect() error = %v", err)
	}
	defer database.Close()

	var count int
	err := database.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("recorded %d migrations, want %d", count, len(migrations))
	}
}

func TestLikesSchema(t *testing.T) {
	db := connectTestDB(t).DB()
	now := time.Now().UTC()

	res, err := db.Exec("INSERT INTO users (name, created_at) VALUES (?, ?)", "Ada", now)
	if err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}
	userID, _ := res.LastInsertId()

	res, err = db.Exec(
		"INSERT INTO posts (title, content_html, author_id, created_at) VALUES (?, ?, ?, ?)",
		"Test Post", "<p>hi</p>", userID, now,
	)
	if err != nil {
		t.Fatalf("Failed to insert post: %v", err)
	}
	postID, _ := res.LastInsertId()

	if _, err := db.Exec("INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)", userID, postID, now); err != nil {
		t.Fatalf("Failed to insert like: %v", err)
	}

	// A second like from the same user violates the primary key
	if _, err := db.Exec("INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)", userID, postID, now); err == nil {
		t.Error("expected duplicate like to fail")
	}

	// Likes must reference an existing post
	if _, err := db.Exec("INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)", userID, 9999, now); err == nil {
		t.Error("expected like on missing post to fail")
	}

	var hidden bool
	var updatedAt sql.NullTime
	err = db.QueryRow("SELECT hidden, updated_at FROM posts WHERE id = ?", postID).Scan(&hidden, &updatedAt)
	if err != nil {
		t.Fatalf("Failed to query post: %v", err)
	}
	if hidden {
		t.Error("hidden should default to false")
	}
	if updatedAt.Valid {
		t.Error("updated_at should be NULL")
	}
}
