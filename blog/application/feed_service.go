package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/shared/db"
	"github.com/rs/zerolog/log"
)

const DefaultPageSize = 10

// FeedService shapes posts for a viewer and applies their likes.
type FeedService struct {
	posts    domain.PostRepository
	likes    domain.LikeRepository
	markdown MarkdownRenderer
	db       *sql.DB
}

func NewFeedService(posts domain.PostRepository, likes domain.LikeRepository, markdown MarkdownRenderer, database *sql.DB) *FeedService {
	return &FeedService{
		posts:    posts,
		likes:    likes,
		markdown: markdown,
		db:       database,
	}
}

// ListFeed returns one page of the site-wide feed, newest first.
// Hidden posts are only included for administrators.
func (s *FeedService) ListFeed(ctx context.Context, viewer domain.Viewer, limit, offset int) ([]*domain.Post, error) {
	return s.list(ctx, viewer, 0, limit, offset)
}

// ListAuthorFeed is ListFeed restricted to posts by authorID.
func (s *FeedService) ListAuthorFeed(ctx context.Context, viewer domain.Viewer, authorID int64, limit, offset int) ([]*domain.Post, error) {
	if authorID <= 0 {
		return nil, fmt.Errorf("invalid author ID %d", authorID)
	}
	return s.list(ctx, viewer, authorID, limit, offset)
}

func (s *FeedService) list(ctx context.Context, viewer domain.Viewer, authorID int64, limit, offset int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	posts, err := s.posts.ListFeed(ctx, domain.FeedQuery{
		ViewerID:      viewer.UserID,
		AuthorID:      authorID,
		IncludeHidden: viewer.IsAdmin,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}

	return posts, nil
}

// GetPost returns a single post shaped for viewer.
// Hidden posts are reported as missing to anyone but an administrator.
func (s *FeedService) GetPost(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, id, viewer.UserID)
	if err != nil {
		return nil, err
	}

	if post.Hidden && !viewer.IsAdmin {
		return nil, fmt.Errorf("%w: %d", domain.ErrPostNotFound, id)
	}

	return post, nil
}

// Like records the viewer's like of post id and returns the updated post.
func (s *FeedService) Like(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error) {
	return s.mutateLike(ctx, viewer, id, s.likes.AddLike)
}

// Unlike removes the viewer's like of post id and returns the updated post.
func (s *FeedService) Unlike(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error) {
	return s.mutateLike(ctx, viewer, id, s.likes.RemoveLike)
}

func (s *FeedService) mutateLike(
	ctx context.Context,
	viewer domain.Viewer,
	id int64,
	mutate func(ctx context.Context, userID, postID int64) error,
) (*domain.Post, error) {
	if viewer.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}

	var updated *domain.Post
	err := db.RunInTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.GetPost(txCtx, viewer, id); err != nil {
			return err
		}

		if err := mutate(txCtx, viewer.UserID, id); err != nil {
			return err
		}

		post, err := s.posts.GetPost(txCtx, id, viewer.UserID)
		if err != nil {
			return err
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SetHidden hides or reveals a post. Only administrators may moderate posts.
func (s *FeedService) SetHidden(ctx context.Context, viewer domain.Viewer, id int64, hidden bool) error {
	if viewer.IsAnonymous() {
		return domain.ErrUnauthenticated
	}
	if !viewer.IsAdmin {
		return domain.ErrForbidden
	}

	if err := s.posts.SetHidden(ctx, id, hidden); err != nil {
		return err
	}

	log.Info().Int64("postID", id).Bool("hidden", hidden).Int64("adminID", viewer.UserID).Msg("Changed post visibility")
	return nil
}

// Publish renders markdown and stores it as a new post by author.
// A zero author ID creates the author first.
func (s *FeedService) Publish(ctx context.Context, author *domain.Author, markdown []byte, createdAt time.Time) (*domain.Post, error) {
	if author == nil {
		return nil, fmt.Errorf("author cannot be nil")
	}

	result, err := s.markdown.Render(markdown)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:       result.Title,
		ContentHTML: string(result.HTMLContent),
		CreatedAt:   createdAt,
	}

	err = db.RunInTransaction(ctx, s.db, func(txCtx context.Context) error {
		if author.ID == 0 {
			if err := s.posts.UpsertAuthor(txCtx, author); err != nil {
				return err
			}
		}

		post.Author = *author
		return s.posts.UpsertPost(txCtx, post)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}

	log.Debug().Int64("postID", post.ID).Str("title", post.Title).Msg("Published post")
	return post, nil
}
