package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dfryer1193/blogfeed/api"
	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/blog/view"
	"github.com/dfryer1193/blogfeed/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ListPosts serves the feed as JSON cards.
func (h *Handlers) ListPosts(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	page, size := h.pagination(c)

	posts, err := h.feed.ListFeed(c.Request.Context(), viewer, size+1, (page-1)*size)
	if err != nil {
		abortJSON(c, err)
		return
	}

	posts, hasMore := trimPage(posts, size)

	resp := api.FeedPage{
		Posts:    make([]api.FeedPost, 0, len(posts)),
		Page:     page,
		PageSize: size,
		HasMore:  hasMore,
	}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, h.toFeedPost(p))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) GetPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post ID"})
		return
	}

	post, err := h.feed.GetPost(c.Request.Context(), middleware.ViewerFrom(c), id)
	if err != nil {
		abortJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toFeedPost(post))
}

func (h *Handlers) LikePost(c *gin.Context) {
	h.mutateLike(c, h.feed.Like)
}

func (h *Handlers) UnlikePost(c *gin.Context) {
	h.mutateLike(c, h.feed.Unlike)
}

type likeFunc func(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error)

func (h *Handlers) mutateLike(c *gin.Context, fn likeFunc) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post ID"})
		return
	}

	post, err := fn(c.Request.Context(), middleware.ViewerFrom(c), id)
	if err != nil {
		abortJSON(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toFeedPost(post))
}

// SetHidden lets an administrator hide or reveal a post.
func (h *Handlers) SetHidden(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid post ID"})
		return
	}

	var req api.SetHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.feed.SetHidden(c.Request.Context(), middleware.ViewerFrom(c), id, *req.Hidden); err != nil {
		abortJSON(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handlers) toFeedPost(post *domain.Post) api.FeedPost {
	card := h.renderer.NewPostSummary(view.PostSummaryProps{Post: post})
	p := card.Post()
	s := card.Summary()

	return api.FeedPost{
		ID:    p.ID,
		Title: p.Title,
		URL:   view.PostHref(p.ID),
		Author: api.Author{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Image: p.Author.Image,
		},
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		Hidden:         p.Hidden,
		Summary:        s.HTML,
		HasMoreContent: s.HasMoreContent,
		IsLiked:        card.IsLiked(),
		Counts: api.PostCounts{
			LikedBy:  p.Counts.LikedBy,
			Comments: p.Counts.Comments,
		},
	}
}
