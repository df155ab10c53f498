package render

import (
	"strings"
	"testing"
	"time"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/repo"
)

func footerDomain() *domain.Domain {
	return &domain.Domain{
		ID: 1, DomainName: "acme.com", IsHTTPS: 1, WrName: "Acme Widget Co",
	}
}

func TestBuildFooterWP_SiloNavigation(t *testing.T) {
	out := BuildFooterWP(FooterInput{
		Domain: footerDomain(),
		Silo: []repo.SiloPage{
			{ID: 1, ResTitle: "Widget Repair"},
			{ID: 2, ResTitle: "Gadget Tune", LinksPerPage: 3},
		},
		Now: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		`<div style="display:block !important;" class="seo-footer-section ">`,
		`<ul class="seo-sub-nav">`,
		// ResourcesActive off: every silo entry links its bc page.
		`href="https://acme.com/widget-repair-1bc/"`,
		`href="https://acme.com/gadget-tune-2bc/"`,
		`&copy; 2026 Acme Widget Co`,
		`href="https://acme.com/"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("footer missing %q", want)
		}
	}
	if strings.Contains(out, ">Resources</a>") {
		t.Errorf("Resources sub-links only render when resources are active")
	}
}

func TestBuildFooterWP_ResourcesActive(t *testing.T) {
	d := footerDomain()
	d.ResourcesActive = "1"
	silo := []repo.SiloPage{
		{ID: 1, ResTitle: "Widget Repair", LinkoutURL: "https://partner.example/deep/link"},
		{ID: 2, ResTitle: "Gadget Tune", NoContent: 1, LinkoutURL: "https://other.example/page", LinksPerPage: 1},
		{ID: 3, ResTitle: "Short Link", LinkoutURL: "http"},
	}

	out := BuildFooterWP(FooterInput{Domain: d, Silo: silo, Now: time.Now()})

	if !strings.Contains(out, `href="https://partner.example/deep/link"`) {
		t.Errorf("usable linkouturl must render as an outbound link")
	}
	// NoContent pages keep the internal link unless the tier is BRON.
	if !strings.Contains(out, `href="https://acme.com/gadget-tune-2/"`) {
		t.Errorf("NoContent page must link internally for non-BRON tiers")
	}
	if !strings.Contains(out, `href="https://acme.com/gadget-tune-2bc/">Resources</a>`) {
		t.Errorf("pages with placements advertise a Resources link")
	}
	// Junk-short linkout falls back to the internal page link.
	if !strings.Contains(out, `href="https://acme.com/short-link-3/"`) {
		t.Errorf("short linkouturl must fall back to the internal link")
	}

	out = BuildFooterWP(FooterInput{Domain: d, Silo: silo, IsBRON: true, Now: time.Now()})
	if !strings.Contains(out, `href="https://other.example/page"`) {
		t.Errorf("BRON tier unlocks outbound links on NoContent pages")
	}
}

func TestBuildFooterWP_BlogFaqAndFallbackName(t *testing.T) {
	d := footerDomain()
	d.WrName = ""
	out := BuildFooterWP(FooterInput{
		Domain: d,
		Settings: &domain.DomainSettings{
			BlogURL: "https://blog.acme.com/feed",
			FaqURL:  "short", // below the minimum length, skipped
		},
		Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	if !strings.Contains(out, `href="https://blog.acme.com/feed">Blog</a>`) {
		t.Errorf("blog link missing")
	}
	if strings.Contains(out, ">FAQ</a>") {
		t.Errorf("short FAQ url must be skipped")
	}
	if !strings.Contains(out, "&copy; 2026 acme.com") {
		t.Errorf("copyright falls back to the domain name")
	}
	// Empty silo: no article navigation at all.
	if strings.Contains(out, "seo-sub-nav") {
		t.Errorf("empty silo must not render the sub nav")
	}
}

func TestBuildFooterWP_SkipsZeroIDRows(t *testing.T) {
	out := BuildFooterWP(FooterInput{
		Domain: footerDomain(),
		Silo:   []repo.SiloPage{{ID: 0, ResTitle: "Ghost"}, {ID: 1, ResTitle: "Real Page"}},
		Now:    time.Now(),
	})
	if strings.Contains(out, "Ghost") {
		t.Errorf("zero-id rows must be skipped")
	}
	if !strings.Contains(out, "Real Page") {
		t.Errorf("real rows must render")
	}
}
