// Package render builds the HTML fragments of a feed page: canonical URLs,
// the resolved header/footer template, the meta header, the WordPress footer,
// and the final assembled document. Everything here is deterministic string
// construction driven by the domain's flags; no package-level state.
package render

import (
	"fmt"
	"strings"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/seotext"
)

// Action codes carried in legacy PHP-plugin URLs.
const (
	ActionReference          = 1
	ActionBusinessCollective = 2
)

// Page-slug suffixes for the alternate renderings in WordPress-plugin mode.
const (
	SuffixBusinessCollective = "bc"
	SuffixDrip               = "dc"
)

// LinkDomain derives the absolute site root for a domain: either its custom
// URL override (when settings enable it) or scheme + optional www + hostname.
// The result never carries a trailing slash.
func LinkDomain(d *domain.Domain, s *domain.DomainSettings) string {
	if s != nil && s.UsedURL == 1 && d.DomainURL != "" {
		return strings.TrimRight(d.DomainURL, "/")
	}
	scheme := "http://"
	if d.IsHTTPS == 1 {
		scheme = "https://"
	}
	host := d.DomainName
	if d.UseWWW == 1 {
		host = "www." + host
	}
	return scheme + host
}

// PageURL builds the canonical URL of a content page. WordPress-plugin
// domains use pretty slug paths ({root}/{slug}-{id}{suffix}/); legacy PHP
// domains use Action query URLs ({root}/?Action={n}&k={slug}&PageID={id}).
func PageURL(linkDomain string, mode domain.PluginMode, title string, id int, suffix string) string {
	slug := seotext.Slug(title)
	if mode == domain.ModeWordPress {
		return fmt.Sprintf("%s/%s-%d%s/", linkDomain, slug, id, suffix)
	}
	action := ActionReference
	if suffix == SuffixBusinessCollective {
		action = ActionBusinessCollective
	}
	return fmt.Sprintf("%s/?Action=%d&k=%s&PageID=%d", linkDomain, action, slug, id)
}

// HomeURL is the canonical homepage link for a domain.
func HomeURL(linkDomain string) string { return linkDomain + "/" }
