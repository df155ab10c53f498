package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/frlmedia/seofeed/internal/domain"
)

func TestPickKeyword(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	kws := []string{"plumber dallas", "drain cleaning"}

	if got := PickKeyword(kws, "Drain Cleaning", rng); got != "drain cleaning" {
		t.Fatalf("exact match (case-insensitive) = %q", got)
	}
	if got := PickKeyword(nil, "fallback", rng); got != "fallback" {
		t.Fatalf("empty list = %q", got)
	}
	// No match: some entry of the list, chosen by the injected source.
	got := PickKeyword(kws, "unrelated", rng)
	if got != kws[0] && got != kws[1] {
		t.Fatalf("random pick outside the list: %q", got)
	}
}

func TestBuildMetaHeader_ExplicitMetaFields(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := BuildMetaHeader(MetaInput{
		Domain: &domain.Domain{DomainName: "acme.com"},
		Item: &domain.ContentItem{
			MetaTitle:       "Custom Title",
			MetaDescription: "Custom description.",
			MetaKeywords:    "alpha, beta",
		},
	}, rng)

	for _, want := range []string{
		"<title>Custom Title</title>",
		`<meta name="description" content="Custom description.">`,
		`<meta name="keywords" content="alpha, beta">`,
		`<meta property="og:title" content="Custom Title">`,
		`<meta property="og:locale" content="en_US">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBuildMetaHeader_DerivedDescriptionAndGeo(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := BuildMetaHeader(MetaInput{
		Domain:           &domain.Domain{DomainName: "acme.com"},
		Keywords:         []string{"widget repair"},
		RequestedKeyword: "widget repair",
		Item: &domain.ContentItem{
			ResTitle:    "Widget Repair",
			ResFullText: "<p>First sentence of the body text used for the derived description of this page.</p>",
		},
		City:  "Dallas",
		State: "TX",
	}, rng)

	if !strings.Contains(out, "<title>Widget Repair Dallas TX</title>") {
		t.Fatalf("geo params must append to the title:\n%s", out)
	}
	if !strings.Contains(out, "First sentence of the body text") {
		t.Fatalf("description must derive from the body text:\n%s", out)
	}
	if !strings.Contains(out, "... Widget Repair Dallas TX") {
		t.Fatalf("derived description must end with the title:\n%s", out)
	}
	if !strings.Contains(out, `content="widget repair, Dallas, TX"`) {
		t.Fatalf("keywords must carry the geo params:\n%s", out)
	}
}

func TestBuildMetaHeader_LocaleAndAnalytics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	out := BuildMetaHeader(MetaInput{
		Domain:   &domain.Domain{DomainName: "acme.co.uk"},
		Settings: &domain.DomainSettings{UmamiID: "site-123"},
	}, rng)
	if strings.Contains(out, "og:locale") {
		t.Fatalf("non-US TLD must not emit the en_US locale:\n%s", out)
	}
	if !strings.Contains(out, `data-website-id="site-123"`) {
		t.Fatalf("analytics script missing:\n%s", out)
	}

	out = BuildMetaHeader(MetaInput{Domain: &domain.Domain{DomainName: "acme.net"}}, rng)
	if !strings.Contains(out, `<meta property="og:locale" content="en_US">`) {
		t.Fatalf(".net domain gets the en_US locale:\n%s", out)
	}
}

func TestBuildMetaHeader_StrictCleanupOnExplicitFields(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := BuildMetaHeader(MetaInput{
		Domain: &domain.Domain{DomainName: "acme.com"},
		Item: &domain.ContentItem{
			MetaTitle:       "Bob&#39;s Shop: Repairs",
			MetaDescription: "It&#39;s the best.",
		},
	}, rng)
	// Colons and apostrophes (decoded ones included) are stripped from
	// explicit meta fields.
	if !strings.Contains(out, "<title>Bobs Shop Repairs</title>") {
		t.Fatalf("title cleanup missing:\n%s", out)
	}
	if !strings.Contains(out, `<meta name="description" content="Its the best.">`) {
		t.Fatalf("description cleanup missing:\n%s", out)
	}
}

func TestBuildMetaHeader_EscapesContent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := BuildMetaHeader(MetaInput{
		Domain: &domain.Domain{DomainName: "acme.com"},
		Item:   &domain.ContentItem{MetaTitle: `Tools & "Dies"`, MetaDescription: "d"},
	}, rng)
	if !strings.Contains(out, "<title>Tools &amp; &#34;Dies&#34;</title>") {
		t.Fatalf("title must be entity-escaped:\n%s", out)
	}
}
