package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrUnauthenticated = errors.New("viewer is not authenticated")
	ErrForbidden       = errors.New("viewer is not allowed to do that")
)

// Author is the user a post is attributed to.
type Author struct {
	ID    int64
	Name  string
	Image string
}

// Like is a single user's like of a post.
type Like struct {
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

// PostCounts holds aggregate counts for a post.
type PostCounts struct {
	LikedBy  int
	Comments int
}

// Post represents a blog post as it appears in a feed.
// LikedBy only ever contains the requesting viewer's own like, so it has length 0 or 1.
type Post struct {
	ID          int64
	Title       string
	ContentHTML string
	Author      Author
	CreatedAt   time.Time
	Hidden      bool
	LikedBy     []Like
	Counts      PostCounts
}

// Viewer identifies who a feed is being built for.
// A zero UserID is an anonymous viewer.
type Viewer struct {
	UserID  int64
	IsAdmin bool
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == 0
}

// FeedQuery narrows a feed listing.
type FeedQuery struct {
	ViewerID      int64
	AuthorID      int64
	IncludeHidden bool
	Limit         int
	Offset        int
}

type PostRepository interface {
	ListFeed(ctx context.Context, q FeedQuery) ([]*Post, error)
	GetPost(ctx context.Context, id int64, viewerID int64) (*Post, error)
	UpsertAuthor(ctx context.Context, a *Author) error
	UpsertPost(ctx context.Context, p *Post) error
	SetHidden(ctx context.Context, postID int64, hidden bool) error
}

type LikeRepository interface {
	AddLike(ctx context.Context, userID, postID int64) error
	RemoveLike(ctx context.Context, userID, postID int64) error
}
