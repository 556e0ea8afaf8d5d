package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/shared/db"
)

var _ domain.LikeRepository = (*SQLiteLikeRepository)(nil)

// SQLiteLikeRepository stores one like per (user, post) pair.
type SQLiteLikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *SQLiteLikeRepository {
	return &SQLiteLikeRepository{
		db: db,
	}
}

const addLikeQuery = `
	INSERT INTO likes (user_id, post_id, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id, post_id) DO NOTHING
`

// AddLike records that userID likes postID. Liking twice is a no-op.
func (r *SQLiteLikeRepository) AddLike(ctx context.Context, userID, postID int64) error {
	if userID <= 0 || postID <= 0 {
		return fmt.Errorf("invalid like: user %d, post %d", userID, postID)
	}

	executor := db.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, addLikeQuery, userID, postID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}

	return nil
}

const removeLikeQuery = `
	DELETE FROM likes
	WHERE user_id = ? AND post_id = ?
`

// RemoveLike deletes userID's like of postID, if any.
func (r *SQLiteLikeRepository) RemoveLike(ctx context.Context, userID, postID int64) error {
	if userID <= 0 || postID <= 0 {
		return fmt.Errorf("invalid like: user %d, post %d", userID, postID)
	}

	executor := db.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, removeLikeQuery, userID, postID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}

	return nil
}
