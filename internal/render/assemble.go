// Package render – final page assembly.
package render

import (
	"regexp"
	"strings"
)

// ContactMarkerClass identifies a footer carrying the contact-info section.
// Such footers are spliced inside the content's wrapper element so the
// contact block stays a sibling of the main content, which the legacy site
// CSS expects.
const ContactMarkerClass = "wr-contact-info"

// headBundle is the fixed CSS/JS bundle injected into every synthesized or
// spliced head section.
const headBundle = `<link rel="stylesheet" href="/static/wr-feed.css">
<script src="/static/wr-feed.js" defer></script>
`

var closingHeadRE = regexp.MustCompile(`(?i)</head\s*>`)

// contactSpliceRE finds the closing tag of the content wrapper: a </div>
// immediately followed by </article>, </main>, or a footer element.
var contactSpliceRE = regexp.MustCompile(`(?is)</div>\s*(</article>|</main>|<footer\b)`)

// WrapInput is everything WrapContent needs to produce the final document.
type WrapInput struct {
	Content    string
	Header     string
	Footer     string
	MetaHeader string
	Canonical  string
	Doctype    string

	// WPPlugin and Simple both mean the host CMS supplies its own document
	// shell; the content passes through untouched.
	WPPlugin bool
	Simple   bool
}

// WrapContent concatenates content, header, and footer into one HTML
// document. In WordPress-plugin or simple mode it returns the content
// unmodified. Otherwise it either splices the meta header, head bundle, and
// canonical link before the header's existing </head>, or synthesizes a full
// document shell around the header when it has none.
func WrapContent(in WrapInput) string {
	if in.WPPlugin || in.Simple {
		return in.Content
	}

	head := in.MetaHeader + headBundle + canonicalLink(in.Canonical)

	var b strings.Builder
	b.Grow(len(in.Content) + len(in.Header) + len(in.Footer) + len(head) + 256)

	if loc := closingHeadRE.FindStringIndex(in.Header); loc != nil {
		// Inject immediately before the existing closing head tag,
		// preserving everything after it.
		b.WriteString(in.Header[:loc[0]])
		b.WriteString(head)
		b.WriteString(in.Header[loc[0]:])
	} else {
		doctype := in.Doctype
		if doctype == "" {
			doctype = "<!DOCTYPE html>\n"
		}
		b.WriteString(doctype)
		b.WriteString("<html>\n<head>\n")
		b.WriteString(head)
		b.WriteString("</head>\n<body>\n")
		b.WriteString(in.Header)
	}

	content, footerPlaced := spliceContactFooter(in.Content, in.Footer)
	b.WriteString(content)
	if !footerPlaced {
		b.WriteString(in.Footer)
	}

	if !strings.Contains(in.Footer, "</body>") {
		b.WriteString("</body>\n")
	}
	if !strings.Contains(in.Footer, "</html>") {
		b.WriteString("</html>\n")
	}
	return b.String()
}

// spliceContactFooter inserts a contact-info footer inside the content's
// wrapper element, immediately before the wrapper's closing tag. Falls back
// to (content, false) when the footer carries no contact marker or no
// insertion point exists, in which case the caller appends the footer.
func spliceContactFooter(content, footer string) (string, bool) {
	if !strings.Contains(footer, ContactMarkerClass) {
		return content, false
	}
	loc := contactSpliceRE.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[0]] + footer + content[loc[0]:], true
}

func canonicalLink(u string) string {
	if u == "" {
		return ""
	}
	return `<link rel="canonical" href="` + u + `">` + "\n"
}
