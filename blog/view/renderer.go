// Package view renders the server-side HTML for feed pages and post summary cards.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dfryer1193/blogfeed/blog/summary"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer holds the parsed templates and the collaborators every card shares.
type Renderer struct {
	templates *template.Template
	extractor summary.Extractor
	htmlView  *htmlView
	now       func() time.Time
}

type Option func(*Renderer)

// WithClock overrides the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer parses the embedded templates. Summaries are computed with extractor.
func NewRenderer(extractor summary.Extractor, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("view").
		Funcs(template.FuncMap{"icon": icon}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := &Renderer{
		templates: tmpl,
		extractor: extractor,
		htmlView:  newHTMLView(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// FeedPage is one page of post summary cards.
type FeedPage struct {
	Title     string
	Cards     []*PostSummary
	NewerHref string
	OlderHref string
}

type feedPageData struct {
	Title     string
	Cards     []template.HTML
	NewerHref string
	OlderHref string
}

// RenderFeed writes a full HTML document for page to w.
func (r *Renderer) RenderFeed(w io.Writer, page FeedPage) error {
	data := feedPageData{
		Title:     page.Title,
		Cards:     make([]template.HTML, 0, len(page.Cards)),
		NewerHref: page.NewerHref,
		OlderHref: page.OlderHref,
	}

	for _, card := range page.Cards {
		markup, err := card.HTML()
		if err != nil {
			return err
		}
		data.Cards = append(data.Cards, markup)
	}

	if err := r.templates.ExecuteTemplate(w, "feed_page", data); err != nil {
		return fmt.Errorf("failed to render feed page: %w", err)
	}
	return nil
}
