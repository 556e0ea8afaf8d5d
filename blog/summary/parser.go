package summary

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var _ Parser = HTMLParser{}

// HTMLParser parses content as a full HTML5 document.
// Malformed markup is repaired the way a browser would, so most input parses.
// Scripting is off, so <noscript> children are parsed as elements.
type HTMLParser struct{}

func (HTMLParser) Parse(content string) (Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(content), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	body := goquery.NewDocumentFromNode(root).Find("body").First()
	return &htmlDocument{body: body}, nil
}

type htmlDocument struct {
	body *goquery.Selection
}

func (d *htmlDocument) First(tag string) (string, bool) {
	match := d.body.Find(tag).First()
	if match.Length() == 0 {
		return "", false
	}
	return OuterHTML(match.Get(0)), true
}

func (d *htmlDocument) BodyChildCount() int {
	return d.body.Children().Length()
}
