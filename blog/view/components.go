package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dfryer1193/blogfeed/blog/domain"
)

const hiddenPostMessage = "This post has been hidden and is only visible to administrators."

// classNames joins the non-empty class tokens with single spaces.
func classNames(classes ...string) string {
	kept := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " ")
}

// PostHref is the canonical link to a post.
func PostHref(id int64) string {
	return fmt.Sprintf("/post/%d", id)
}

func commentsHref(id int64) string {
	return PostHref(id) + "#comments"
}

func likeHref(id int64) string {
	return PostHref(id) + "/like"
}

func profileHref(id int64) string {
	return fmt.Sprintf("/profile/%d", id)
}

type bannerData struct {
	Class   string
	Message string
}

type authorWithDateData struct {
	Name        string
	Image       string
	Initial     string
	ProfileHref string
	DateISO     string
	TimeAgo     string
}

func newAuthorWithDate(author domain.Author, date time.Time, now time.Time) authorWithDateData {
	initial := "?"
	if name := strings.TrimSpace(author.Name); name != "" {
		initial = strings.ToUpper(string([]rune(name)[:1]))
	}

	return authorWithDateData{
		Name:        author.Name,
		Image:       author.Image,
		Initial:     initial,
		ProfileHref: profileHref(author.ID),
		DateISO:     date.UTC().Format(time.RFC3339),
		TimeAgo:     FormatDistance(date, now),
	}
}

type buttonLinkData struct {
	Href  string
	Class string
	Body  template.HTML
}

func buttonClass(variant string, responsive bool) string {
	base := "inline-flex items-center justify-center font-semibold transition-colors rounded-full"
	size := "h-8 px-4 text-sm"
	if responsive {
		size = "h-8 px-3 text-xs md:px-4 md:text-sm"
	}

	var colors string
	switch variant {
	case "secondary":
		colors = "border text-primary bg-secondary hover:bg-tertiary"
	default:
		colors = "text-white bg-blue hover:bg-blue-dark"
	}

	return classNames(base, size, colors)
}

type likeButtonData struct {
	Action    string
	IsLiked   bool
	LikeCount int
	Class     string
	IconClass string
	Label     string
}

func newLikeButton(postID int64, isLiked bool, likeCount int, responsive bool) likeButtonData {
	label := "Like"
	iconClass := "w-4 h-4 text-red"
	if isLiked {
		label = "Unlike"
		iconClass = classNames(iconClass, "fill-red")
	}

	return likeButtonData{
		Action:    likeHref(postID),
		IsLiked:   isLiked,
		LikeCount: likeCount,
		Class:     buttonClass("secondary", responsive),
		IconClass: iconClass,
		Label:     label,
	}
}

type htmlViewData struct {
	Class string
	HTML  template.HTML
}

// htmlView sanitizes post markup before it is trusted by the template engine.
type htmlView struct {
	policy *bluemonday.Policy
}

func newHTMLView() *htmlView {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	return &htmlView{policy: policy}
}

func (v *htmlView) data(markup string, class string) htmlViewData {
	return htmlViewData{
		Class: classNames("prose max-w-none", class),
		HTML:  template.HTML(v.policy.Sanitize(markup)),
	}
}

var icons = map[string]string{
	"message":       `<path stroke-linecap="round" stroke-linejoin="round" d="M8 10h.01M12 10h.01M16 10h.01M9 16H5a2 2 0 01-2-2V6a2 2 0 012-2h14a2 2 0 012 2v8a2 2 0 01-2 2h-5l-5 5v-5z"/>`,
	"chevron-right": `<path stroke-linecap="round" stroke-linejoin="round" d="M9 5l7 7-7 7"/>`,
	"heart":         `<path stroke-linecap="round" stroke-linejoin="round" d="M4.318 6.318a4.5 4.5 0 000 6.364L12 20.364l7.682-7.682a4.5 4.5 0 00-6.364-6.364L12 7.636l-1.318-1.318a4.5 4.5 0 00-6.364 0z"/>`,
}

// icon renders a named stroke icon. Unknown names render nothing.
func icon(name, class string) template.HTML {
	path, ok := icons[name]
	if !ok {
		return ""
	}

	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" fill="none" viewBox="0 0 24 24" stroke="currentColor" stroke-width="2" class="%s" aria-hidden="true">%s</svg>`,
		template.HTMLEscapeString(class),
		path,
	))
}

func iconWithCount(name, class string, count int) template.HTML {
	return icon(name, class) + template.HTML(fmt.Sprintf(`<span class="ml-1.5">%d</span>`, count))
}
