package summary

import (
	"strings"

	"golang.org/x/net/html"
)

// html.Render writes void elements as <img/>, which is not what a browser's outerHTML
// gives back. These sets follow the HTML fragment serialization rules instead.
var (
	voidElements = map[string]bool{
		"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
		"col": true, "embed": true, "frame": true, "hr": true, "img": true,
		"input": true, "keygen": true, "link": true, "meta": true, "param": true,
		"source": true, "track": true, "wbr": true,
	}
	rawTextElements = map[string]bool{
		"style": true, "script": true, "xmp": true, "iframe": true,
		"noembed": true, "noframes": true, "plaintext": true,
	}

	textEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", `"`, "&quot;")
)

// OuterHTML serializes n and its descendants the way Element.outerHTML does.
func OuterHTML(n *html.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		writeElement(b, n)
	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode &&
			n.Parent.Namespace == "" && rawTextElements[n.Parent.Data] {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(textEscaper.Replace(n.Data))
	case html.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case html.DocumentNode:
		writeChildren(b, n)
	}
}

func writeElement(b *strings.Builder, n *html.Node) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if n.Namespace == "" && voidElements[n.Data] {
		return
	}

	writeChildren(b, n)
	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
}

func writeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}
}
