package view

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dfryer1193/blogfeed/blog/domain"
	"github.com/dfryer1193/blogfeed/blog/summary"
)

// PostSummaryProps are the inputs to a single feed card.
type PostSummaryProps struct {
	Post       *domain.Post
	HideAuthor bool
	OnLike     func()
	OnUnlike   func()
}

// PostSummary is a feed card for one post.
// It never changes the post; liking goes through the callbacks.
type PostSummary struct {
	props    PostSummaryProps
	memo     *summary.Memo
	renderer *Renderer
}

// NewPostSummary builds a card. The summary fragment is computed on first use.
func (r *Renderer) NewPostSummary(props PostSummaryProps) *PostSummary {
	return &PostSummary{
		props:    props,
		memo:     summary.NewMemo(r.extractor),
		renderer: r,
	}
}

func (s *PostSummary) Post() *domain.Post {
	return s.props.Post
}

// IsLiked reports whether the viewer has liked the post.
// LikedBy is expected to hold only the viewer's own like record.
func (s *PostSummary) IsLiked() bool {
	return len(s.props.Post.LikedBy) == 1
}

// ToggleLike calls OnUnlike when the post is liked and OnLike otherwise.
func (s *PostSummary) ToggleLike() {
	if s.IsLiked() {
		if s.props.OnUnlike != nil {
			s.props.OnUnlike()
		}
		return
	}

	if s.props.OnLike != nil {
		s.props.OnLike()
	}
}

func (s *PostSummary) Summary() summary.Summary {
	return s.memo.Get(s.props.Post.ContentHTML)
}

type postSummaryData struct {
	Hidden         bool
	Banner         bannerData
	BodyClass      string
	PostHref       string
	Title          string
	MetaClass      string
	HideAuthor     bool
	CreatedAtISO   string
	TimeAgo        string
	AuthorWithDate authorWithDateData
	LikeButton     likeButtonData
	CommentsLink   buttonLinkData
	HTMLView       htmlViewData
	HasMoreContent bool
}

func (s *PostSummary) data() postSummaryData {
	post := s.props.Post
	hideAuthor := s.props.HideAuthor
	now := s.renderer.now()
	sum := s.Summary()

	bodyClass := ""
	if post.Hidden {
		bodyClass = "opacity-50"
	}

	metaSpacing, summarySpacing := "mt-6", "mt-6"
	if hideAuthor {
		metaSpacing, summarySpacing = "mt-2", "mt-4"
	}

	d := postSummaryData{
		Hidden:       post.Hidden,
		BodyClass:    classNames(bodyClass),
		PostHref:     PostHref(post.ID),
		Title:        post.Title,
		MetaClass:    classNames("flex items-center justify-between gap-4", metaSpacing),
		HideAuthor:   hideAuthor,
		CreatedAtISO: post.CreatedAt.UTC().Format(time.RFC3339),
		TimeAgo:      FormatDistance(post.CreatedAt, now),
		LikeButton:   newLikeButton(post.ID, s.IsLiked(), post.Counts.LikedBy, true),
		CommentsLink: buttonLinkData{
			Href:  commentsHref(post.ID),
			Class: buttonClass("secondary", true),
			Body:  iconWithCount("message", "w-4 h-4 text-secondary", post.Counts.Comments),
		},
		HTMLView:       s.renderer.htmlView.data(sum.HTML, summarySpacing),
		HasMoreContent: sum.HasMoreContent,
	}

	if post.Hidden {
		d.Banner = bannerData{Class: "mb-6 flex items-center justify-between p-4 rounded bg-yellow-light", Message: hiddenPostMessage}
	}
	if !hideAuthor {
		d.AuthorWithDate = newAuthorWithDate(post.Author, post.CreatedAt, now)
	}

	return d
}

// Render writes the card markup to w.
func (s *PostSummary) Render(w io.Writer) error {
	if err := s.renderer.templates.ExecuteTemplate(w, "post_summary", s.data()); err != nil {
		return fmt.Errorf("failed to render post summary %d: %w", s.props.Post.ID, err)
	}
	return nil
}

// HTML renders the card into a string that is safe to embed in another template.
func (s *PostSummary) HTML() (template.HTML, error) {
	var buf strings.Builder
	if err := s.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
