package application

import (
	"strings"
	"testing"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name         string
		markdown     []byte
		expected     string
		expectedBody string
	}{
		{
			name:         "Valid title",
			markdown:     []byte("# My Blog Post\nSome content"),
			expected:     "My Blog Post",
			expectedBody: "Some content",
		},
		{
			name:         "Title with extra spaces",
			markdown:     []byte("#   Title with spaces   \nContent"),
			expected:     "Title with spaces",
			expectedBody: "Content",
		},
		{
			name:         "Title only",
			markdown:     []byte("# Lonely"),
			expected:     "Lonely",
			expectedBody: "",
		},
		{
			name:         "No title",
			markdown:     []byte("Some content without title"),
			expected:     untitledPost,
			expectedBody: "Some content without title",
		},
		{
			name:         "Empty markdown",
			markdown:     []byte(""),
			expected:     untitledPost,
			expectedBody: "",
		},
		{
			name:         "Hash without space",
			markdown:     []byte("#NoSpace\nContent"),
			expected:     untitledPost,
			expectedBody: "#NoSpace\nContent",
		},
		{
			name:         "Second level heading is not a title",
			markdown:     []byte("## Section\nContent"),
			expected:     untitledPost,
			expectedBody: "## Section\nContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := splitTitle(tt.markdown)
			if title != tt.expected {
				t.Errorf("splitTitle() title = %q, want %q", title, tt.expected)
			}
			if string(body) != tt.expectedBody {
				t.Errorf("splitTitle() body = %q, want %q", body, tt.expectedBody)
			}
		})
	}
}

func TestIsRelativeLink(t *testing.T) {
	tests := []struct {
		dest     string
		expected bool
	}{
		{dest: "image.png", expected: true},
		{dest: "./image.png", expected: true},
		{dest: "../images/image.png", expected: true},
		{dest: "/images/image.png", expected: true},
		{dest: "//cdn.example.com/image.png", expected: false},
		{dest: "https://example.com/image.png", expected: false},
		{dest: "mailto:someone@example.com", expected: false},
		{dest: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			if got := isRelativeLink(tt.dest); got != tt.expected {
				t.Errorf("isRelativeLink(%q) = %v, want %v", tt.dest, got, tt.expected)
			}
		})
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	renderer := NewMarkdownRenderer()

	tests := []struct {
		name        string
		markdown    string
		title       string
		contains    []string
		notContains []string
	}{
		{
			name:        "Title is removed from body",
			markdown:    "# Hello\n\nFirst paragraph.",
			title:       "Hello",
			contains:    []string{"<p>First paragraph.</p>"},
			notContains: []string{"<h1", "Hello"},
		},
		{
			name:     "Relative image is rewritten",
			markdown: "# Pics\n\n![cat](../assets/cat.png)",
			title:    "Pics",
			contains: []string{`src="/images/cat.png"`},
		},
		{
			name:     "Absolute image is kept",
			markdown: "# Pics\n\n![cat](https://example.com/cat.png)",
			title:    "Pics",
			contains: []string{`src="https://example.com/cat.png"`},
		},
		{
			name:     "Relative link becomes a slug",
			markdown: "# Links\n\nSee [the other post](./002-other.md).",
			title:    "Links",
			contains: []string{`href="/002-other"`},
		},
		{
			name:     "Fragment links are kept",
			markdown: "# Links\n\nJump to [comments](#comments).",
			title:    "Links",
			contains: []string{`href="#comments"`},
		},
		{
			name:     "Lists and code blocks",
			markdown: "# Mixed\n\n- one\n- two\n\n```\ncode\n```",
			title:    "Mixed",
			contains: []string{"<ul>", "<li>one</li>", "<pre><code>code"},
		},
		{
			name:        "Raw HTML is not passed through",
			markdown:    "# Unsafe\n\n<script>alert(1)</script>",
			title:       "Unsafe",
			notContains: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderer.Render([]byte(tt.markdown))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if result.Title != tt.title {
				t.Errorf("Title = %q, want %q", result.Title, tt.title)
			}

			html := string(result.HTMLContent)
			for _, want := range tt.contains {
				if !strings.Contains(html, want) {
					t.Errorf("HTMLContent %q does not contain %q", html, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(html, unwanted) {
					t.Errorf("HTMLContent %q should not contain %q", html, unwanted)
				}
			}
		})
	}
}
