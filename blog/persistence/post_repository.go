package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

const defaultFeedLimit = 10

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

// feedSelect loads a post with its author, aggregate counts and the viewer's own like.
// likes is keyed on (user_id, post_id), so the viewer join yields at most one row per post.
const feedSelect = `
	SELECT p.id, p.title, p.content_html, p.hidden, p.created_at,
		u.id, u.name, u.image,
		(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
		vl.user_id, vl.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN likes vl ON vl.post_id = p.id AND vl.user_id = ?
`

const listFeedQuery = feedSelect + `
	WHERE (? = 1 OR p.hidden = 0)
		AND (? = 0 OR p.author_id = ?)
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT ? OFFSET ?
`

// ListFeed returns posts newest first, shaped for the viewer in q.
func (r *SQLitePostRepository) ListFeed(ctx context.Context, q domain.FeedQuery) ([]*domain.Post, error) {
	if q.Limit <= 0 {
		q.Limit = defaultFeedLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	executor := db.GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, listFeedQuery,
		q.ViewerID,
		q.IncludeHidden,
		q.AuthorID,
		q.AuthorID,
		q.Limit,
		q.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0, q.Limit)
	for rows.Next() {
		var row feedRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return posts, nil
}

const getPostQuery = feedSelect + `
	WHERE p.id = ?
`

// GetPost retrieves a single post by ID, with LikedBy filtered to viewerID.
func (r *SQLitePostRepository) GetPost(ctx context.Context, id int64, viewerID int64) (*domain.Post, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid post ID %d", id)
	}

	var row feedRow
	executor := db.GetExecutor(ctx, r.db)
	err := row.scan(executor.QueryRowContext(ctx, getPostQuery, viewerID, id))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrPostNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return row.toDomain(), nil
}

const insertAuthorQuery = `
	INSERT INTO users (name, image, created_at)
	VALUES (?, ?, ?)
`

const upsertAuthorQuery = `
	INSERT INTO users (id, name, image, created_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		image = excluded.image
`

// UpsertAuthor inserts or updates a user. A zero ID inserts and assigns a new ID.
func (r *SQLitePostRepository) UpsertAuthor(ctx context.Context, a *domain.Author) error {
	if a == nil {
		return fmt.Errorf("author cannot be nil")
	}

	executor := db.GetExecutor(ctx, r.db)
	now := time.Now().UTC()

	if a.ID == 0 {
		res, err := executor.ExecContext(ctx, insertAuthorQuery, a.Name, a.Image, now)
		if err != nil {
			return fmt.Errorf("failed to insert author: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read author ID: %w", err)
		}
		a.ID = id
		return nil
	}

	if _, err := executor.ExecContext(ctx, upsertAuthorQuery, a.ID, a.Name, a.Image, now); err != nil {
		return fmt.Errorf("failed to upsert author: %w", err)
	}
	return nil
}

const insertPostQuery = `
	INSERT INTO posts (title, content_html, author_id, hidden, created_at)
	VALUES (?, ?, ?, ?, ?)
`

const upsertPostQuery = `
	INSERT INTO posts (id, title, content_html, author_id, hidden, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		content_html = excluded.content_html,
		author_id = excluded.author_id,
		hidden = excluded.hidden,
		updated_at = ?,
		created_at = COALESCE(posts.created_at, excluded.created_at)
`

// UpsertPost inserts or updates a post. A zero ID inserts and assigns a new ID.
// Likes and counts on p are ignored; they are derived from other tables.
func (r *SQLitePostRepository) UpsertPost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if p.Author.ID == 0 {
		return fmt.Errorf("post author ID cannot be empty")
	}

	createdAt := p.CreatedAt.UTC()
	if p.CreatedAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	executor := db.GetExecutor(ctx, r.db)

	if p.ID == 0 {
		res, err := executor.ExecContext(ctx, insertPostQuery, p.Title, p.ContentHTML, p.Author.ID, p.Hidden, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read post ID: %w", err)
		}
		p.ID = id
		p.CreatedAt = createdAt
		return nil
	}

	_, err := executor.ExecContext(ctx, upsertPostQuery,
		p.ID,
		p.Title,
		p.ContentHTML,
		p.Author.ID,
		p.Hidden,
		createdAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert post: %w", err)
	}

	return nil
}

const setHiddenQuery = `
	UPDATE posts
	SET hidden = ?, updated_at = ?
	WHERE id = ?
`

// SetHidden hides or reveals a post.
func (r *SQLitePostRepository) SetHidden(ctx context.Context, postID int64, hidden bool) error {
	executor := db.GetExecutor(ctx, r.db)
	res, err := executor.ExecContext(ctx, setHiddenQuery, hidden, time.Now().UTC(), postID)
	if err != nil {
		return fmt.Errorf("failed to set post visibility: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrPostNotFound, postID)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// feedRow is a private struct used to scan feed query rows.
// Viewer like columns are nullable because of the LEFT JOIN.
type feedRow struct {
	ID           int64
	Title        string
	ContentHTML  string
	Hidden       bool
	CreatedAt    sql.NullTime
	AuthorID     int64
	AuthorName   string
	AuthorImage  string
	LikeCount    int
	CommentCount int
	LikerID      sql.NullInt64
	LikedAt      sql.NullTime
}

func (fr *feedRow) scan(s rowScanner) error {
	return s.Scan(
		&fr.ID,
		&fr.Title,
		&fr.ContentHTML,
		&fr.Hidden,
		&fr.CreatedAt,
		&fr.AuthorID,
		&fr.AuthorName,
		&fr.AuthorImage,
		&fr.LikeCount,
		&fr.CommentCount,
		&fr.LikerID,
		&fr.LikedAt,
	)
}

// toDomain converts a feedRow to a domain.Post, handling nullable columns
func (fr *feedRow) toDomain() *domain.Post {
	post := &domain.Post{
		ID:          fr.ID,
		Title:       fr.Title,
		ContentHTML: fr.ContentHTML,
		Hidden:      fr.Hidden,
		Author: domain.Author{
			ID:    fr.AuthorID,
			Name:  fr.AuthorName,
			Image: fr.AuthorImage,
		},
		LikedBy: []domain.Like{},
		Counts: domain.PostCounts{
			LikedBy:  fr.LikeCount,
			Comments: fr.CommentCount,
		},
	}

	if fr.CreatedAt.Valid {
		post.CreatedAt = fr.CreatedAt.Time
	}
	if fr.LikerID.Valid {
		like := domain.Like{UserID: fr.LikerID.Int64, PostID: fr.ID}
		if fr.LikedAt.Valid {
			like.CreatedAt = fr.LikedAt.Time
		}
		post.LikedBy = append(post.LikedBy, like)
	}

	return post
}
