package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dfryer1193/blogfeed/shared/db"
)

var _ db.Database = (*SQLiteDB)(nil)

func TestNewSQLiteConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{name: "path from environment", envValue: "/var/lib/blogfeed/feed.db", want: "/var/lib/blogfeed/feed.db"},
		{name: "in-memory from environment", envValue: ":memory:", want: ":memory:"},
		{name: "unset falls back to working directory", want: "./blogfeed.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SQLITE_DB_PATH", tt.envValue)

			if got := NewSQLiteConfig().Path; got != tt.want {
				t.Errorf("Path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLiteDB_Lifecycle(t *testing.T) {
	tests := []struct {
		name         string
		path         func(t *testing.T) string
		wantMaxConns int
	}{
		{
			name:         "file database uses an open pool",
			path:         func(t *testing.T) string { return filepath.Join(t.TempDir(), "feed.db") },
			wantMaxConns: 0,
		},
		{
			name:         "in-memory database is pinned to one connection",
			path:         func(*testing.T) string { return ":memory:" },
			wantMaxConns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := NewSQLiteDB(&SQLiteConfig{Path: tt.path(t)})

			if err := database.Close(); err != nil {
				t.Errorf("Close() before Connect() error = %v", err)
			}

			if err := database.Connect(); err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			if err := database.Connect(); err == nil {
				t.Error("second Connect() should fail")
			}

			conn := database.DB()
			if conn == nil {
				t.Fatal("DB() returned nil after Connect()")
			}
			if got := conn.Stats().MaxOpenConnections; got != tt.wantMaxConns {
				t.Errorf("MaxOpenConnections = %d, want %d", got, tt.wantMaxConns)
			}

			var foreignKeys int
			if err := conn.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
				t.Fatalf("failed to read foreign_keys pragma: %v", err)
			}
			if foreignKeys != 1 {
				t.Errorf("foreign_keys = %d, want 1", foreignKeys)
			}

			if err := database.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
			if database.DB() != nil {
				t.Error("DB() should return nil after Close()")
			}
		})
	}
}

func TestSQLiteDB_ConnectFailure(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{Path: filepath.Join(t.TempDir(), "missing", "feed.db")})

	if err := database.Connect(); err == nil {
		database.Close()
		t.Fatal("Connect() into a missing directory should fail")
	}
	if database.DB() != nil {
		t.Error("DB() should stay nil after a failed Connect()")
	}
}

func TestSQLiteDB_RejectsPostWithUnknownAuthor(t *testing.T) {
	database := NewSQLiteDB(&SQLiteConfig{Path: ":memory:"})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	_, err := database.DB().Exec(
		"INSERT INTO posts (title, content_html, author_id, created_at) VALUES (?, ?, ?, ?)",
		"orphan", "<p>x</p>", 404, time.Now().UTC(),
	)
	if err == nil {
		t.Error("inserting a post for a missing author should violate the foreign key")
	}
}

func TestSQLiteDB_KeepsPostsAcrossReconnect(t *testing.T) {
	cfg := &SQLiteConfig{Path: filepath.Join(t.TempDir(), "feed.db")}

	first := NewSQLiteDB(cfg)
	if err := first.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	now := time.Now().UTC()
	res, err := first.DB().Exec("INSERT INTO users (name, created_at) VALUES (?, ?)", "Ada", now)
	if err != nil {
		t.Fatalf("failed to insert author: %v", err)
	}
	authorID, _ := res.LastInsertId()

	if _, err := first.DB().Exec(
		"INSERT INTO posts (title, content_html, author_id, created_at) VALUES (?, ?, ?, ?)",
		"Engines", "<p>The analytical engine.</p>", authorID, now,
	); err != nil {
		t.Fatalf("failed to insert post: %v", err)
	}
	first.Close()

	second := NewSQLiteDB(cfg)
	if err := second.Connect(); err != nil {
		t.Fatalf("reconnect error = %v", err)
	}
	defer second.Close()

	var title string
	if err := second.DB().QueryRow("SELECT title FROM posts WHERE author_id = ?", authorID).Scan(&title); err != nil {
		t.Fatalf("failed to read post back: %v", err)
	}
	if title != "Engines" {
		t.Errorf("title = %q, want %q", title, "Engines")
	}
}
