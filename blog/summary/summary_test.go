package summary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_HTMLParser(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantHTML string
		wantMore bool
	}{
		{
			name:     "paragraph outranks earlier h3",
			content:  "<h3>A</h3><p>B</p>",
			wantHTML: "<p>B</p>",
			wantMore: true,
		},
		{
			name:     "lone image",
			content:  "<img src=x>",
			wantHTML: `<img src="x">`,
			wantMore: false,
		},
		{
			name:     "no allowed tag",
			content:  "<div>hi</div>",
			wantHTML: FallbackHTML,
			wantMore: false,
		},
		{
			name:     "paragraph inside noscript",
			content:  "<noscript><p>B</p></noscript>",
			wantHTML: "<p>B</p>",
			wantMore: false,
		},
		{
			name:     "noscript after another element",
			content:  "<div>x</div><noscript><p>B</p></noscript>",
			wantHTML: "<p>B</p>",
			wantMore: true,
		},
		{
			name:     "noscript markup inside a summary is kept as elements",
			content:  "<ul><li><noscript><b>x &amp; y</b></noscript></li></ul>",
			wantHTML: "<ul><li><noscript><b>x &amp; y</b></noscript></li></ul>",
			wantMore: false,
		},
		{
			name:     "empty content",
			content:  "",
			wantHTML: FallbackHTML,
			wantMore: false,
		},
		{
			name:     "plain text only",
			content:  "just some text",
			wantHTML: FallbackHTML,
			wantMore: false,
		},
		{
			name:     "nested paragraph found inside wrapper",
			content:  "<div><ul><li>a</li></ul><p>x</p></div>",
			wantHTML: "<p>x</p>",
			wantMore: false,
		},
		{
			name:     "first paragraph in document order",
			content:  "<div><p>first</p></div><p>second</p>",
			wantHTML: "<p>first</p>",
			wantMore: true,
		},
		{
			name:     "unordered list outranks h3",
			content:  "<h3>T</h3><ul><li>a</li></ul>",
			wantHTML: "<ul><li>a</li></ul>",
			wantMore: true,
		},
		{
			name:     "ordered list outranks pre",
			content:  "<pre>code</pre><ol><li>one</li></ol>",
			wantHTML: "<ol><li>one</li></ol>",
			wantMore: true,
		},
		{
			name:     "pre outranks image",
			content:  "<img src=\"a.png\"><pre>x := 1</pre>",
			wantHTML: "<pre>x := 1</pre>",
			wantMore: true,
		},
		{
			name:     "whitespace between elements is not counted",
			content:  "<p>a</p>\n\n<p>b</p>",
			wantHTML: "<p>a</p>",
			wantMore: true,
		},
		{
			name:     "unclosed paragraph is repaired",
			content:  "<p>unclosed",
			wantHTML: "<p>unclosed</p>",
			wantMore: false,
		},
		{
			name:     "text is escaped",
			content:  "<p>a &amp; b &lt; c</p>",
			wantHTML: "<p>a &amp; b &lt; c</p>",
			wantMore: false,
		},
		{
			name:     "attributes are double quoted and escaped",
			content:  `<p class="lead" data-x='a"b'>t</p>`,
			wantHTML: `<p class="lead" data-x="a&quot;b">t</p>`,
			wantMore: false,
		},
		{
			name:     "void child element has no closing slash",
			content:  "<p>x<br>y</p>",
			wantHTML: "<p>x<br>y</p>",
			wantMore: false,
		},
		{
			name:     "inline children kept",
			content:  `<p>see <a href="/post/2">this</a> and <em>that</em></p><p>more</p>`,
			wantHTML: `<p>see <a href="/post/2">this</a> and <em>that</em></p>`,
			wantMore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(HTMLParser{}, tt.content)
			assert.Equal(t, tt.wantHTML, got.HTML)
			assert.Equal(t, tt.wantMore, got.HasMoreContent)
		})
	}
}

type fakeDocument struct {
	elements map[string]string
	children int
	queried  []string
}

func (d *fakeDocument) First(tag string) (string, bool) {
	d.queried = append(d.queried, tag)
	outer, ok := d.elements[tag]
	return outer, ok
}

func (d *fakeDocument) BodyChildCount() int {
	return d.children
}

type fakeParser struct {
	doc *fakeDocument
	err error
}

func (p *fakeParser) Parse(string) (Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.doc, nil
}

func TestExtract_QueriesTagsInPriorityOrder(t *testing.T) {
	doc := &fakeDocument{
		elements: map[string]string{"pre": "<pre>x</pre>", "img": `<img src="y">`},
		children: 3,
	}

	got := Extract(&fakeParser{doc: doc}, "ignored")

	assert.Equal(t, "<pre>x</pre>", got.HTML)
	assert.True(t, got.HasMoreContent)
	assert.Equal(t, []string{"p", "ul", "ol", "h3", "pre"}, doc.queried)
}

func TestExtract_ParseErrorFallsBack(t *testing.T) {
	got := Extract(&fakeParser{err: errors.New("boom")}, "<p>x</p>")

	assert.Equal(t, FallbackHTML, got.HTML)
	assert.False(t, got.HasMoreContent)
}

func TestExtract_SingleChildHasNoMoreContent(t *testing.T) {
	doc := &fakeDocument{elements: map[string]string{"p": "<p>a</p>"}, children: 1}

	got := NewExtractor(&fakeParser{doc: doc}).Extract("ignored")

	assert.Equal(t, "<p>a</p>", got.HTML)
	assert.False(t, got.HasMoreContent)
}
