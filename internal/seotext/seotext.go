// Package seotext provides the pure text transforms used when rendering feed
// pages: legacy entity cleanup, ASCII folding, slug generation, and title
// casing. All functions are side-effect free and safe for concurrent use.
//
// The replacement tables mirror the behavior of the PHP content pipeline this
// service replaces; ordering of the replacements is significant and must not
// be changed.
package seotext

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ampRunRE collapses runs of double-escaped ampersands ("&amp;amp;amp;…")
	// down to a bare "&".
	ampRunRE = regexp.MustCompile(`&(amp;)+`)

	slugDropRE = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWsRE   = regexp.MustCompile(`\s+`)
)

// filterTable is the fixed legacy entity-cleanup table. The pairs MUST run
// sequentially in this order, not as a single replacer pass: an earlier
// deletion can form a later entity ("&nb&#153;sp;" becomes "&nbsp;"
// mid-pass) and that entity still has to decode before the pass ends.
var filterTable = [...][2]string{
	{"&amp;amp;", "&amp;"},
	{"&amp;mdash;", "&mdash;"},
	{"&amp;nbsp;", "&nbsp;"},
	{"&amp;#", "&#"},
	{"&#39;", "'"},
	{"&#124;", "|"},
	{"&gt;", ">"},
	{"&lt;", "<"},
	{"&Acirc;", " "},
	{"&acirc;", ""},
	{"&#128;", ""},
	{"&#153;", ""},
	{"&rsquo;", "'"},
	{"&bull;", " "},
	{"&nbsp;", " "},
	{"&ndash;", "-"},
	{"&ldquo;", `"`},
	{"&rdquo;", `"`},
	{"&mdash;", "--"},
}

// FilterTextCustom decodes the fixed set of double-escaped HTML entities the
// legacy authoring tools produced, yielding singly-escaped text. It never
// fails; empty input yields "". Applying it twice is equivalent to applying
// it once for the entity set it targets.
func FilterTextCustom(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = ampRunRE.ReplaceAllString(text, "&")
	for _, p := range filterTable {
		text = strings.ReplaceAll(text, p[0], p[1])
	}
	return text
}

// TextCustom is the stricter variant used for meta fields: it collapses
// escaped ampersand runs, decodes apostrophe and pipe entities, and strips
// colons and apostrophes outright. The steps run in order, so a decoded
// apostrophe is itself stripped: TextCustom("it&#39;s") == "its".
func TextCustom(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = ampRunRE.ReplaceAllString(text, "&")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&#124;", "|")
	text = strings.ReplaceAll(text, ":", "")
	return strings.ReplaceAll(text, "'", "")
}

// ToASCII strips apostrophes and literal ampersand tokens after decoding
// entities. It intentionally does not perform full Unicode transliteration;
// the legacy transliteration table was never carried over and slugs only keep
// [a-z0-9-] anyway.
func ToASCII(text string) string {
	text = FilterTextCustom(text)
	text = strings.ReplaceAll(text, " &#x26;", "")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "#039;", "")
	text = strings.ReplaceAll(text, " & ", " ")
	return strings.ReplaceAll(text, "&", "")
}

// Slug converts a title into its URL slug: ASCII-folded, lowercased, stripped
// to [a-z0-9 -], with whitespace runs collapsed to single hyphens.
//
// Slug("Plumbing Repair") == "plumbing-repair"
func Slug(text string) string {
	text = strings.ToLower(ToASCII(text))
	text = slugDropRE.ReplaceAllString(text, "")
	return slugWsRE.ReplaceAllString(strings.TrimSpace(text), "-")
}

var titleCaser = cases.Title(language.English)

// CleanTitle returns the trimmed input unchanged when it already contains an
// uppercase letter (already-capitalized titles were authored deliberately),
// and title-cases it otherwise.
func CleanTitle(text string) string {
	text = strings.TrimSpace(text)
	if strings.ContainsFunc(text, unicode.IsUpper) {
		return text
	}
	return titleCaser.String(text)
}

var tagRE = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every HTML tag from s. It is a plain regexp strip, not a
// parser; good enough for the entity-laden fragments this service renders.
func StripTags(s string) string {
	return tagRE.ReplaceAllString(s, "")
}

// FirstWords returns the first n whitespace-separated words of s joined by
// single spaces. Used to derive meta descriptions from body text.
func FirstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
