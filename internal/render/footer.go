// Package render – WordPress plugin footer.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/repo"
	"github.com/frlmedia/seofeed/internal/seotext"
)

// minExternalLinkLen is the shortest linkouturl considered usable; anything
// at or below it (empty, "http", junk) falls back to the internal page link.
const minExternalLinkLen = 5

// minFooterURLLen gates the blog and FAQ footer entries.
const minFooterURLLen = 10

// FooterInput bundles the rows the footer renders: the domain, its settings,
// its silo pages (with per-page placement counts), and whether its service
// tier is BRON.
type FooterInput struct {
	Domain   *domain.Domain
	Settings *domain.DomainSettings
	Silo     []repo.SiloPage
	IsBRON   bool
	Now      time.Time
}

// BuildFooterWP renders the seo-footer-section fragment the WordPress plugin
// injects at the bottom of the host page: the article silo navigation, the
// optional Resources links for pages advertising placements, blog/FAQ links,
// and the copyright button.
func BuildFooterWP(in FooterInput) string {
	linkdomain := LinkDomain(in.Domain, in.Settings)

	var foot strings.Builder
	if len(in.Silo) > 0 {
		foot.WriteString("<li>")
		foot.WriteString("<ul class=\"seo-sub-nav\">\n")

		for _, item := range in.Silo {
			if item.ID == 0 {
				continue
			}

			newsf := ""
			if item.LinksPerPage >= 1 {
				bclink := linkdomain + "/" + seotext.Slug(item.ResTitle) + fmt.Sprintf("-%d%s/", item.ID, SuffixBusinessCollective)
				newsf = ` <a style="padding-left: 0px !important;" href="` + bclink + `">Resources</a>`
			}

			title := seotext.CleanTitle(seotext.FilterTextCustom(item.ResTitle))
			if in.Domain.ResourcesActive == "1" {
				if (item.NoContent == 0 || in.IsBRON) && len(strings.TrimSpace(item.LinkoutURL)) > minExternalLinkLen {
					// Outbound resource link.
					foot.WriteString(`<li><a style="padding-right: 0px !important;" href="` + item.LinkoutURL + `">` + title + `</a>` + newsf + "</li>\n")
				} else {
					// Internal content page link.
					slug := seotext.Slug(item.ResTitle) + fmt.Sprintf("-%d/", item.ID)
					foot.WriteString(`<li><a style="padding-right: 0px !important;" href="` + linkdomain + `/` + slug + `">` + title + `</a>` + newsf + "</li>\n")
				}
			} else {
				// Business collective link only.
				slug := seotext.Slug(item.ResTitle) + fmt.Sprintf("-%d%s/", item.ID, SuffixBusinessCollective)
				foot.WriteString(`<li><a style="padding-right: 0px !important;" href="` + linkdomain + `/` + slug + `">` + title + `</a></li>` + "\n")
			}
		}

		foot.WriteString("</ul>\n")
		foot.WriteString("Articles</li>\n")
	}

	if in.Settings != nil && len(in.Settings.BlogURL) > minFooterURLLen {
		foot.WriteString(`<li><a class="url" style="width: 100%;font-size:12px;line-height:13px;" target="_blank" href="` + in.Settings.BlogURL + `">Blog</a></li>` + "\n")
	}
	if in.Settings != nil && len(in.Settings.FaqURL) > minFooterURLLen {
		foot.WriteString(`<li><a class="url" style="width: 100%;font-size:12px;line-height:13px;" target="_blank" href="` + in.Settings.FaqURL + `">FAQ</a></li>` + "\n")
	}

	ltest := in.Domain.WrName
	if ltest == "" {
		ltest = in.Domain.DomainName
	}
	foot.WriteString(`</ul><a href="` + linkdomain + `/"><div class="seo-button-paid">&copy; ` +
		fmt.Sprintf("%d", in.Now.Year()) + ` ` + ltest + `</div></a></li></ul>` + "\n")

	var b strings.Builder
	b.WriteString("<div class=\"seo-automation-spacer\"></div>\n")
	b.WriteString("<div style=\"display:block !important;\" class=\"seo-footer-section \">\n")
	b.WriteString("<ul class=\"seo-footer-nav num-lite\">\n")
	b.WriteString("<li>\n")
	b.WriteString("<ul>\n")
	b.WriteString(foot.String())
	b.WriteString("<div class=\"seo-automation-spacer\"></div>\n")
	b.WriteString("<style>\n")
	b.WriteString(".seo-footer-nav li ul li ul {\n")
	b.WriteString("\tleft:70px !important;;\n")
	b.WriteString("}\n")
	b.WriteString("</style>\n")
	b.WriteString("</div>")
	return b.String()
}
