// Package summary picks the HTML fragment that stands in for a post's content in a feed.
//
// The fragment is the first element matching the highest-priority tag in AllowedTags.
// Priority is by tag, not by position: a <p> anywhere in the body beats an <h3> that
// comes before it.
package summary

import (
	"github.com/rs/zerolog/log"
)

// FallbackHTML is used when the content has none of the allowed tags.
const FallbackHTML = "<p>Summary couldn't be generated</p>"

// AllowedTags is the tag preference order used to pick a summary element.
var AllowedTags = []string{"p", "ul", "ol", "h3", "pre", "img"}

// Summary is the derived excerpt for a post.
type Summary struct {
	HTML string
	// HasMoreContent is true when the body has more than one top-level element.
	HasMoreContent bool
}

// Document is a parsed content body.
type Document interface {
	// First returns the outer markup of the first element with the given tag name,
	// in document order, among the body's descendants.
	First(tag string) (string, bool)
	// BodyChildCount returns the number of element children of the body.
	BodyChildCount() int
}

// Parser turns a content string into a Document.
type Parser interface {
	Parse(content string) (Document, error)
}

// Extractor produces a Summary for a content string.
type Extractor interface {
	Extract(content string) Summary
}

type parserExtractor struct {
	parser Parser
}

// NewExtractor returns an Extractor that parses every call with p.
func NewExtractor(p Parser) Extractor {
	return &parserExtractor{parser: p}
}

func (e *parserExtractor) Extract(content string) Summary {
	return Extract(e.parser, content)
}

// Extract parses content with p and selects its summary fragment.
// Parse failures never surface; they degrade to the fallback.
func Extract(p Parser, content string) Summary {
	doc, err := p.Parse(content)
	if err != nil {
		log.Debug().Err(err).Msg("Failed to parse post content, using fallback summary")
		return Summary{HTML: FallbackHTML}
	}

	return Summary{
		HTML:           firstAllowed(doc),
		HasMoreContent: doc.BodyChildCount() > 1,
	}
}

func firstAllowed(doc Document) string {
	for _, tag := range AllowedTags {
		if outer, ok := doc.First(tag); ok {
			return outer
		}
	}
	return FallbackHTML
}
