package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/blog/view"
	"github.com/dfryer1193/blogfeed/internal/middleware"
	"github.com/gin-gonic/gin"
)

const siteTitle = "Latest posts"

// FeedPage serves the site-wide feed as HTML.
func (h *Handlers) FeedPage(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	page, size := h.pagination(c)

	posts, err := h.feed.ListFeed(c.Request.Context(), viewer, size+1, (page-1)*size)
	if err != nil {
		abortHTML(c, err)
		return
	}

	posts, hasMore := trimPage(posts, size)
	h.renderPage(c, siteTitle, posts, false, page, hasMore)
}

// ProfilePage serves one author's posts. The author is implied by the page,
// so cards leave it out.
func (h *Handlers) ProfilePage(c *gin.Context) {
	authorID, ok := paramID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	viewer := middleware.ViewerFrom(c)
	page, size := h.pagination(c)

	posts, err := h.feed.ListAuthorFeed(c.Request.Context(), viewer, authorID, size+1, (page-1)*size)
	if err != nil {
		abortHTML(c, err)
		return
	}

	posts, hasMore := trimPage(posts, size)

	title := "Posts"
	if len(posts) > 0 {
		title = "Posts by " + posts[0].Author.Name
	}
	h.renderPage(c, title, posts, true, page, hasMore)
}

// PostPage serves a single post card.
func (h *Handlers) PostPage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	post, err := h.feed.GetPost(c.Request.Context(), middleware.ViewerFrom(c), id)
	if err != nil {
		abortHTML(c, err)
		return
	}

	h.renderPage(c, post.Title, []*domain.Post{post}, false, 1, false)
}

// ToggleLike handles the like button form. The card decides whether this is a
// like or an unlike from the viewer's current state.
func (h *Handlers) ToggleLike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}

	viewer := middleware.ViewerFrom(c)
	if viewer.IsAnonymous() {
		abortHTML(c, domain.ErrUnauthenticated)
		return
	}

	ctx := c.Request.Context()
	post, err := h.feed.GetPost(ctx, viewer, id)
	if err != nil {
		abortHTML(c, err)
		return
	}

	var actionErr error
	card := h.renderer.NewPostSummary(view.PostSummaryProps{
		Post: post,
		OnLike: func() {
			_, actionErr = h.feed.Like(ctx, viewer, id)
		},
		OnUnlike: func() {
			_, actionErr = h.feed.Unlike(ctx, viewer, id)
		},
	})
	card.ToggleLike()

	if actionErr != nil {
		abortHTML(c, actionErr)
		return
	}

	c.Redirect(http.StatusSeeOther, backTo(c, view.PostHref(id)))
}

func (h *Handlers) renderPage(c *gin.Context, title string, posts []*domain.Post, hideAuthor bool, page int, hasMore bool) {
	cards := make([]*view.PostSummary, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, h.renderer.NewPostSummary(view.PostSummaryProps{
			Post:       p,
			HideAuthor: hideAuthor,
		}))
	}

	feedPage := view.FeedPage{
		Title: title,
		Cards: cards,
	}
	if page > 1 {
		feedPage.NewerHref = pageHref(c.Request.URL, page-1)
	}
	if hasMore {
		feedPage.OlderHref = pageHref(c.Request.URL, page+1)
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderFeed(&buf, feedPage); err != nil {
		abortHTML(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func pageHref(current *url.URL, page int) string {
	q := current.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", fmt.Sprint(page))
	}

	u := url.URL{Path: current.Path, RawQuery: q.Encode()}
	return u.String()
}

// backTo returns the referring page when it is on this site, else fallback.
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}

	u := url.URL{Path: ref.Path, RawQuery: ref.RawQuery, Fragment: ref.Fragment}
	return u.String()
}
