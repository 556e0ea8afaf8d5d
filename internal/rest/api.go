package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/blog/view"
	"github.com/dfryer1193/blogfeed/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxPageSize = 50

// FeedService is the application surface the handlers depend on.
type FeedService interface {
	ListFeed(ctx context.Context, viewer domain.Viewer, limit, offset int) ([]*domain.Post, error)
	ListAuthorFeed(ctx context.Context, viewer domain.Viewer, authorID int64, limit, offset int) ([]*domain.Post, error)
	GetPost(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error)
	Like(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error)
	Unlike(ctx context.Context, viewer domain.Viewer, id int64) (*domain.Post, error)
	SetHidden(ctx context.Context, viewer domain.Viewer, id int64, hidden bool) error
}

type Handlers struct {
	feed     FeedService
	renderer *view.Renderer
	pageSize int
}

func NewHandlers(feed FeedService, renderer *view.Renderer, pageSize int) *Handlers {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Handlers{
		feed:     feed,
		renderer: renderer,
		pageSize: pageSize,
	}
}

// NewRouter builds the gin engine with the middleware chain and all routes.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		gin.CustomRecovery(middleware.HandlePanics()),
		middleware.Metrics(),
		middleware.ResolveViewer(),
	)

	NewApi(router, h)
	return router
}

func NewApi(router *gin.Engine, h *Handlers) {
	router.GET("/", h.FeedPage)
	router.GET("/feed", h.FeedPage)
	router.GET("/profile/:id", h.ProfilePage)
	router.GET("/post/:id", h.PostPage)
	router.POST("/post/:id/like", h.ToggleLike)

	postsV1 := router.Group("/api/v1/posts")
	{
		postsV1.GET("", h.ListPosts)
		postsV1.GET("/:id", h.GetPost)
		postsV1.POST("/:id/like", h.LikePost)
		postsV1.DELETE("/:id/like", h.UnlikePost)
		postsV1.PUT("/:id/hidden", h.SetHidden)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})
}

// pagination reads ?page= (1-based) and ?page_size=; bad values fall back to defaults.
func (h *Handlers) pagination(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err = strconv.Atoi(c.Query("page_size"))
	if err != nil || size < 1 {
		size = h.pageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}

// paramID parses a positive int64 path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// trimPage drops the look-ahead row fetched to detect a following page.
func trimPage(posts []*domain.Post, size int) ([]*domain.Post, bool) {
	if len(posts) > size {
		return posts[:size], true
	}
	return posts, false
}
