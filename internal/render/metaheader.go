// Package render – meta header construction.
package render

import (
	"html"
	"math/rand"
	"strings"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/seotext"
)

// metaDescriptionWords is how many words of body text seed a derived
// description when the content item has no explicit one.
const metaDescriptionWords = 20

// MetaInput carries everything the meta header needs. Item may be nil for
// pages without a resolved content record (the domain defaults then drive
// title and description).
type MetaInput struct {
	Domain   *domain.Domain
	Settings *domain.DomainSettings

	// Keywords is the domain's keyword list; RequestedKeyword is the raw k
	// parameter from the request, possibly empty.
	Keywords         []string
	RequestedKeyword string

	Item        *domain.ContentItem
	City, State string

	// Category is the content item's category name, appended to the meta
	// keywords when set.
	Category string
}

// PickKeyword selects the page keyword: the exact case-insensitive match of
// the requested keyword when present, otherwise a random entry. The rand
// source is injected so callers can seed it; the legacy system picked an
// unseeded random index, which made identical requests emit different meta
// keywords. Kept, but reproducible under test.
func PickKeyword(keywords []string, requested string, rng *rand.Rand) string {
	if len(keywords) == 0 {
		return requested
	}
	for _, k := range keywords {
		if strings.EqualFold(k, requested) {
			return k
		}
	}
	return keywords[rng.Intn(len(keywords))]
}

// BuildMetaHeader renders the <title>, meta description/keywords, Open Graph
// tags, locale tag, and optional analytics script for a page.
func BuildMetaHeader(in MetaInput, rng *rand.Rand) string {
	title, desc := titleAndDescription(in)
	keyword := PickKeyword(in.Keywords, in.RequestedKeyword, rng)

	keywords := keyword
	if in.Item != nil && strings.TrimSpace(in.Item.MetaKeywords) != "" {
		keywords = in.Item.MetaKeywords
	}
	if cat := strings.TrimSpace(in.Category); cat != "" {
		keywords += ", " + cat
	}

	if in.City != "" {
		title += " " + in.City
		desc += " " + in.City
		keywords += ", " + in.City
	}
	if in.State != "" {
		title += " " + in.State
		desc += " " + in.State
		keywords += ", " + in.State
	}

	var b strings.Builder
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString(`<meta name="description" content="` + html.EscapeString(desc) + "\">\n")
	b.WriteString(`<meta name="keywords" content="` + html.EscapeString(keywords) + "\">\n")
	b.WriteString(`<meta property="og:title" content="` + html.EscapeString(title) + "\">\n")
	b.WriteString(`<meta property="og:description" content="` + html.EscapeString(desc) + "\">\n")
	if isUSDomain(in.Domain) {
		b.WriteString(`<meta property="og:locale" content="en_US">` + "\n")
	}
	if in.Settings != nil && strings.TrimSpace(in.Settings.UmamiID) != "" {
		b.WriteString(`<script defer src="https://cloud.umami.is/script.js" data-website-id="` +
			html.EscapeString(in.Settings.UmamiID) + `"></script>` + "\n")
	}
	return b.String()
}

// titleAndDescription resolves the page title and description, preferring the
// explicit meta fields and deriving from body text otherwise.
func titleAndDescription(in MetaInput) (title, desc string) {
	if in.Item == nil {
		title = seotext.CleanTitle(in.Domain.DomainName)
		desc = title
		return
	}

	// Explicit meta fields go through the strict cleanup (colons and
	// apostrophes stripped); derived ones already pass through the filter
	// chain below.
	title = seotext.TextCustom(in.Item.MetaTitle)
	if title == "" {
		title = seotext.CleanTitle(seotext.FilterTextCustom(in.Item.ResTitle))
	}

	desc = seotext.TextCustom(in.Item.MetaDescription)
	if desc == "" {
		plain := seotext.StripTags(html.UnescapeString(in.Item.ResFullText))
		desc = seotext.FirstWords(plain, metaDescriptionWords) + "... " + title
	}
	return
}

// isUSDomain guesses the locale from the TLD. The legacy data has no country
// column; US-centric TLDs get the en_US Open Graph locale.
func isUSDomain(d *domain.Domain) bool {
	name := strings.ToLower(d.DomainName)
	for _, tld := range []string{".com", ".net", ".org", ".us"} {
		if strings.HasSuffix(name, tld) {
			return true
		}
	}
	return false
}
