package application

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const untitledPost = "Untitled Post"

// MarkdownProcessingResult contains the results of processing a markdown document
type MarkdownProcessingResult struct {
	Title       string
	HTMLContent []byte
}

// relativeLinkTransformer points relative image sources at /images/ and
// relative links at post slugs on this site.
type relativeLinkTransformer struct {
	imagePrefix string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Image:
			if isRelativeLink(string(v.Destination)) {
				v.Destination = []byte(t.imagePrefix + path.Base(string(v.Destination)))
			}
		case *ast.Link:
			dest := string(v.Destination)
			if isRelativeLink(dest) && !strings.HasPrefix(dest, "#") {
				slug := path.Base(dest)
				slug = strings.TrimSuffix(slug, ".md")
				slug = strings.TrimSuffix(slug, ".html")
				v.Destination = []byte("/" + slug)
			}
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if dest == "" {
		return false
	}

	if strings.HasPrefix(dest, "//") {
		return false
	}

	if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

// MarkdownRenderer defines the interface for converting markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) (*MarkdownProcessingResult, error)
}

type MarkdownRendererImpl struct {
	renderer goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRendererImpl {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&relativeLinkTransformer{imagePrefix: "/images/"}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &MarkdownRendererImpl{
		renderer: renderer,
	}
}

// Render converts markdown to HTML. A leading "# " heading becomes the title
// and is left out of the body, since cards render the title themselves.
func (r *MarkdownRendererImpl) Render(markdown []byte) (*MarkdownProcessingResult, error) {
	title, body := splitTitle(markdown)

	var buf bytes.Buffer
	if err := r.renderer.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return &MarkdownProcessingResult{
		Title:       title,
		HTMLContent: bytes.TrimSpace(buf.Bytes()),
	}, nil
}

func splitTitle(markdown []byte) (string, []byte) {
	lines := strings.SplitN(string(markdown), "\n", 2)

	firstLine := strings.TrimSpace(lines[0])
	title, found := strings.CutPrefix(firstLine, "# ")
	if !found || strings.TrimSpace(title) == "" {
		return untitledPost, markdown
	}

	var body string
	if len(lines) == 2 {
		body = lines[1]
	}

	return strings.TrimSpace(title), []byte(body)
}
