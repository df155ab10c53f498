// Package linker implements inline keyword linking for rendered feed pages.
//
// Given a content fragment and a ranked keyword list, it wraps up to two
// in-content occurrences of each keyword in an anchor tag, never touching
// text that already sits inside a tag or an existing anchor. Keywords that do
// not occur in the content at all can optionally be appended as trailing
// links so every requested keyword ends up with at least one outbound link on
// the page.
package linker

import (
	"regexp"
	"strings"

	"github.com/frlmedia/seofeed/internal/seotext"
)

// MainKeywordSkip is the number of leading content bytes the main keyword
// scan ignores. Upstream tooling links the main keyword near the top of the
// page already; scanning past it avoids double-linking.
const MainKeywordSkip = 4000

// MaxLinksPerKeyword caps how many in-content anchors a single keyword may
// receive.
const MaxLinksPerKeyword = 2

// Keyword pairs a keyword with its link target. Main marks the page's primary
// keyword, which is subject to the leading-content dead zone.
type Keyword struct {
	Text string
	URL  string
	Main bool
}

var anchorRE = regexp.MustCompile(`(?is)<a\b[^>]*>.*?</a>`)

// span is a half-open byte range [start, end).
type span struct{ start, end int }

// forbiddenSpans returns the byte ranges of existing anchor elements and of
// every HTML tag in content. Matches inside these ranges must not be wrapped.
func forbiddenSpans(content string) []span {
	var spans []span
	for _, m := range anchorRE.FindAllStringIndex(content, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	for _, m := range regexp.MustCompile(`<[^>]*>`).FindAllStringIndex(content, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	return spans
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// wordBoundaryPattern builds a case-insensitive, word-bounded pattern for kw.
func wordBoundaryPattern(kw string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
}

// LinkKeywords inserts anchors for each keyword into content and returns the
// rewritten fragment.
//
// Per keyword, the first two word-boundary matches outside tags and existing
// anchors are wrapped with <a title="kw" href="url">, preserving the casing
// of the matched text. Keywords with empty text or URL are skipped. The main
// keyword ignores the first MainKeywordSkip bytes of content.
//
// When appendUnfound is true, any keyword absent (case-insensitive) from the
// tag-stripped plain text of the final content is appended as a trailing
// anchor, separated by <br>, using the keyword's canonical casing.
func LinkKeywords(content string, keywords []Keyword, appendUnfound bool) string {
	for _, kw := range keywords {
		if strings.TrimSpace(kw.Text) == "" || strings.TrimSpace(kw.URL) == "" {
			continue
		}
		content = linkOne(content, kw)
	}

	if !appendUnfound {
		return content
	}

	plain := strings.ToLower(seotext.StripTags(content))
	var trailing []string
	for _, kw := range keywords {
		if strings.TrimSpace(kw.Text) == "" || strings.TrimSpace(kw.URL) == "" {
			continue
		}
		if strings.Contains(plain, strings.ToLower(kw.Text)) {
			continue
		}
		trailing = append(trailing,
			`<a title="`+kw.Text+`" href="`+kw.URL+`">`+kw.Text+`</a>`)
	}
	if len(trailing) > 0 {
		content += strings.Join(trailing, "<br>")
	}
	return content
}

// linkOne wraps up to MaxLinksPerKeyword occurrences of kw in content.
func linkOne(content string, kw Keyword) string {
	re, err := wordBoundaryPattern(kw.Text)
	if err != nil {
		return content
	}

	skip := 0
	if kw.Main && len(content) > MainKeywordSkip {
		skip = MainKeywordSkip
	} else if kw.Main {
		// Content shorter than the dead zone: the main keyword gets no
		// in-content links, only a trailing one via appendUnfound.
		return content
	}

	forbidden := forbiddenSpans(content)
	var b strings.Builder
	b.Grow(len(content) + 128)
	b.WriteString(content[:skip])

	rest := content
	written := skip
	linked := 0
	for linked < MaxLinksPerKeyword {
		loc := re.FindStringIndex(rest[written:])
		if loc == nil {
			break
		}
		start := written + loc[0]
		end := written + loc[1]
		if overlaps(forbidden, start, end) {
			b.WriteString(rest[written:end])
			written = end
			continue
		}
		matched := rest[start:end]
		b.WriteString(rest[written:start])
		b.WriteString(`<a title="` + kw.Text + `" href="` + kw.URL + `">` + matched + `</a>`)
		written = end
		linked++
	}
	b.WriteString(rest[written:])
	return b.String()
}
