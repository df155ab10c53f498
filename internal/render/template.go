// Package render – header/footer template preparation.
package render

import (
	"html"
	"strings"

	"github.com/frlmedia/seofeed/internal/domain"
)

// Domain status codes treated as inactive. Pages for these domains always
// render with the built-in default template.
const (
	StatusSuspended = 4
	StatusCancelled = 5
	StatusRejected  = 6
)

// IsInactiveStatus reports whether a domain status forces the default
// template regardless of what the fallback chain resolved.
func IsInactiveStatus(status int) bool {
	switch status {
	case StatusSuspended, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// StyleVars are the inline-CSS strings substituted into template markup.
type StyleVars struct {
	Title   string
	Date    string
	Content string

	// MainPageLinks opens a style attribute without closing the quote. The
	// legacy templates close it themselves during concatenation; emitting a
	// well-formed attribute here would double-quote every page. Preserved
	// bug-for-bug.
	MainPageLinks string
}

// Resolved is a template ready for assembly: decoded header/footer markup and
// the style strings derived from the template's color/font fields.
type Resolved struct {
	Header  string
	Footer  string
	Doctype string
	Style   StyleVars
}

const (
	defaultTextColor = "black"
	defaultLinkColor = "blue"
)

// Prepare turns a stored template row into render-ready markup. Stored fields
// are HTML-entity-encoded exactly once, so they are unescaped exactly once;
// the legacy <old>/</old> markers both rewrite to a plain "<".
func Prepare(t *domain.FeedTemplate) Resolved {
	return Resolved{
		Header:  decodeTemplateField(t.Header),
		Footer:  decodeTemplateField(t.Footer),
		Doctype: decodeTemplateField(t.Doctype),
		Style:   buildStyleVars(t),
	}
}

func decodeTemplateField(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "</old>", "<")
	return strings.ReplaceAll(s, "<old>", "<")
}

func buildStyleVars(t *domain.FeedTemplate) StyleVars {
	titleColor := orDefault(t.TitleColor, defaultTextColor)
	dateColor := orDefault(t.DateColor, defaultTextColor)
	contentColor := orDefault(t.ContentColor, defaultTextColor)
	linkColor := orDefault(t.LinkColor, defaultLinkColor)

	font := fontFragment(t)
	return StyleVars{
		Title:         `style="color:` + titleColor + `;` + font + `"`,
		Date:          `style="color:` + dateColor + `;` + font + `"`,
		Content:       `style="color:` + contentColor + `;` + font + `"`,
		MainPageLinks: `style="color:` + linkColor + `;`,
	}
}

func fontFragment(t *domain.FeedTemplate) string {
	var b strings.Builder
	if t.FontFamily != "" {
		b.WriteString("font-family:" + t.FontFamily + ";")
	}
	if t.FontSize != "" {
		b.WriteString("font-size:" + t.FontSize + ";")
	}
	if t.FontWeight != "" {
		b.WriteString("font-weight:" + t.FontWeight + ";")
	}
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// DefaultTemplate is the built-in global default used when the fallback chain
// resolves nothing usable or the domain is inactive.
func DefaultTemplate() Resolved {
	return Resolved{
		Header: `<div class="wr-page">` + "\n" + `<div class="wr-content">` + "\n",
		Footer: "</div>\n</div>\n",
		Style: StyleVars{
			Title:         `style="color:` + defaultTextColor + `;"`,
			Date:          `style="color:` + defaultTextColor + `;"`,
			Content:       `style="color:` + defaultTextColor + `;"`,
			MainPageLinks: `style="color:` + defaultLinkColor + `;`,
		},
	}
}
