// Package services – PageService
//
// This file implements PageService, the component that owns the full
// page-assembly pipeline: resolve the tenant domain, read-repair its settings
// row, resolve the content item (with service-tier variants and safe
// fallbacks), auto-link the domain keywords into the body, resolve the
// header/footer template chain, build the meta header, and wrap everything
// into the final HTML document.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// the domain and page identifiers.
package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/linker"
	"github.com/frlmedia/seofeed/internal/render"
	"github.com/frlmedia/seofeed/internal/repo"
	"github.com/frlmedia/seofeed/internal/seotext"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// minBodyTextLen is the shortest full/short text worth rendering as a body
// block. Anything at or below it renders a title-only page.
const minBodyTextLen = 50

// maxSupportingKeywords caps how many non-main keywords get auto-linked.
const maxSupportingKeywords = 2

// PageRequest carries the per-request inputs of the page pipeline after the
// transport layer has merged and typed the raw parameters.
type PageRequest struct {
	Host    string
	PageID  int
	Keyword string
	City    string
	State   string

	// Simple suppresses the document shell; the caller embeds the fragment.
	Simple bool
}

// PageService assembles content pages for tenant domains.
type PageService struct {
	DB *gorm.DB

	// rng drives the meta-keyword selection. The legacy system used an
	// unseeded random pick; injecting the source keeps that behavior
	// reproducible under test. Guarded by mu: rand.Rand is not safe for
	// concurrent use.
	rng *rand.Rand
	mu  sync.Mutex
}

// NewPageService constructs a PageService. seed 0 means time-seeded.
func NewPageService(db *gorm.DB, seed int64) *PageService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PageService{DB: db, rng: rand.New(rand.NewSource(seed))}
}

// buildMeta serializes access to the shared rand source.
func (s *PageService) buildMeta(in render.MetaInput) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.BuildMetaHeader(in, s.rng)
}

// resolved bundles the per-request domain context derived once and passed
// down, instead of re-deriving flags at every call site.
type resolvedDomain struct {
	Domain   *domain.Domain
	Settings *domain.DomainSettings
	Mode     domain.PluginMode
	Tier     domain.ServiceTier
	LinkRoot string
}

// resolveDomain looks up the tenant, enforces its status, read-repairs the
// settings row, and classifies plugin mode and service tier. Shared by the
// page and feed services so every entry point applies the same gating.
func resolveDomain(ctx context.Context, db *gorm.DB, host string) (*resolvedDomain, error) {
	d, err := repo.GetDomainByName(ctx, db, host)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDomainNotFound
		}
		return nil, err
	}
	if d.Status == render.StatusRejected {
		return nil, ErrDomainRejected
	}

	settings, err := repo.GetOrCreateSettings(ctx, db, d.ID)
	if err != nil {
		return nil, err
	}

	tier := domain.TierStandard
	if svc, err := repo.GetService(ctx, db, d.ServiceType); err != nil {
		return nil, err
	} else if svc != nil {
		tier = domain.ClassifyServiceTier(svc.ServiceType)
	}

	return &resolvedDomain{
		Domain:   d,
		Settings: settings,
		Mode:     domain.ResolvePluginMode(d),
		Tier:     tier,
		LinkRoot: render.LinkDomain(d, settings),
	}, nil
}

// ReferencePage renders the main content page for a domain (legacy Action 1).
func (s *PageService) ReferencePage(ctx context.Context, req PageRequest) (string, error) {
	tr := otel.Tracer("services/PageService")
	ctx, span := tr.Start(ctx, "ReferencePage",
		trace.WithAttributes(
			attribute.String("page.host", req.Host),
			attribute.Int("page.id", req.PageID),
		),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, req.Host)
	if err != nil {
		return "", err
	}

	item, err := s.resolveItem(ctx, rd, req.PageID, req.Keyword)
	if err != nil {
		return "", err
	}

	fullText, shortText := item.ResFullText, item.ResShortText
	if rd.Tier == domain.TierSEOM {
		// SEOM tiers serve the support variant's text when one exists.
		if sup, err := repo.GetSupportContent(ctx, s.DB, rd.Domain.ID, item.ID); err == nil && strings.TrimSpace(sup.ResFullText) != "" {
			fullText = sup.ResFullText
		}
	}

	body := s.buildBody(rd, item, fullText, shortText)
	body = s.linkDomainKeywords(ctx, rd, item, body)

	tmpl, err := s.resolveTemplate(ctx, rd)
	if err != nil {
		return "", err
	}

	var category string
	if cat, err := repo.GetCategory(ctx, s.DB, item.CategoryID); err != nil {
		return "", err
	} else if cat != nil {
		category = cat.Category
	}

	meta := s.buildMeta(render.MetaInput{
		Domain:           rd.Domain,
		Settings:         rd.Settings,
		Keywords:         repo.DomainKeywords(rd.Domain),
		RequestedKeyword: req.Keyword,
		Item:             item,
		City:             req.City,
		State:            req.State,
		Category:         category,
	})

	return render.WrapContent(render.WrapInput{
		Content:    body,
		Header:     tmpl.Header,
		Footer:     tmpl.Footer,
		Doctype:    tmpl.Doctype,
		MetaHeader: meta,
		Canonical:  render.PageURL(rd.LinkRoot, rd.Mode, item.ResTitle, item.ID, ""),
		WPPlugin:   rd.Mode == domain.ModeWordPress,
		Simple:     req.Simple,
	}), nil
}

// BusinessCollectivePage renders the link-exchange aggregation page for a
// content item (legacy Action 2, the "bc" slug suffix).
func (s *PageService) BusinessCollectivePage(ctx context.Context, req PageRequest) (string, error) {
	tr := otel.Tracer("services/PageService")
	ctx, span := tr.Start(ctx, "BusinessCollectivePage",
		trace.WithAttributes(
			attribute.String("page.host", req.Host),
			attribute.Int("page.id", req.PageID),
		),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, req.Host)
	if err != nil {
		return "", err
	}
	item, err := s.resolveItem(ctx, rd, req.PageID, req.Keyword)
	if err != nil {
		return "", err
	}

	placements, err := repo.ListPlacements(ctx, s.DB, item.ID)
	if err != nil {
		return "", err
	}

	title := seotext.CleanTitle(seotext.FilterTextCustom(item.ResTitle))
	var b strings.Builder
	b.WriteString(`<div class="wr-bc-page">` + "\n")
	b.WriteString(`<h1 class="wr-title">` + title + ` Resources</h1>` + "\n")
	b.WriteString(`<ul class="wr-bc-links">` + "\n")
	for _, p := range placements {
		root := render.LinkDomain(&domain.Domain{
			DomainName: p.DomainName,
			IsHTTPS:    p.IsHTTPS,
			UseWWW:     p.UseWWW,
		}, nil)
		url := render.PageURL(root, domain.ModeWordPress, p.ResTitle, p.ContentID, "")
		b.WriteString(`<li><a href="` + url + `">` + seotext.CleanTitle(seotext.FilterTextCustom(p.ResTitle)) + `</a></li>` + "\n")
	}
	b.WriteString("</ul>\n</div>\n")

	tmpl, err := s.resolveTemplate(ctx, rd)
	if err != nil {
		return "", err
	}
	meta := s.buildMeta(render.MetaInput{
		Domain:           rd.Domain,
		Settings:         rd.Settings,
		Keywords:         repo.DomainKeywords(rd.Domain),
		RequestedKeyword: req.Keyword,
		Item:             item,
	})

	return render.WrapContent(render.WrapInput{
		Content:    b.String(),
		Header:     tmpl.Header,
		Footer:     tmpl.Footer,
		Doctype:    tmpl.Doctype,
		MetaHeader: meta,
		Canonical:  render.PageURL(rd.LinkRoot, rd.Mode, item.ResTitle, item.ID, render.SuffixBusinessCollective),
		WPPlugin:   rd.Mode == domain.ModeWordPress,
		Simple:     req.Simple,
	}), nil
}

// DripPage renders the recent-posts listing for a content item (the "dc"
// slug suffix), available on domains with drip content enabled.
func (s *PageService) DripPage(ctx context.Context, req PageRequest) (string, error) {
	tr := otel.Tracer("services/PageService")
	ctx, span := tr.Start(ctx, "DripPage",
		trace.WithAttributes(attribute.String("page.host", req.Host)),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, req.Host)
	if err != nil {
		return "", err
	}
	if rd.Domain.DripContent != 1 {
		return "", ErrContentNotFound
	}
	item, err := s.resolveItem(ctx, rd, req.PageID, req.Keyword)
	if err != nil {
		return "", err
	}

	posts, err := repo.ListDripPosts(ctx, s.DB, rd.Domain.ID, item.ID, time.Now(), 10)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<div class="wr-drip-page">` + "\n")
	b.WriteString(`<h1 class="wr-title">Recent Posts</h1>` + "\n")
	for _, p := range posts {
		b.WriteString(`<div class="wr-drip-post">` + "\n")
		b.WriteString(`<h2>` + seotext.CleanTitle(seotext.FilterTextCustom(p.Title)) + `</h2>` + "\n")
		b.WriteString(p.Body + "\n")
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")

	tmpl, err := s.resolveTemplate(ctx, rd)
	if err != nil {
		return "", err
	}
	meta := s.buildMeta(render.MetaInput{
		Domain:           rd.Domain,
		Settings:         rd.Settings,
		Keywords:         repo.DomainKeywords(rd.Domain),
		RequestedKeyword: req.Keyword,
		Item:             item,
	})

	return render.WrapContent(render.WrapInput{
		Content:    b.String(),
		Header:     tmpl.Header,
		Footer:     tmpl.Footer,
		Doctype:    tmpl.Doctype,
		MetaHeader: meta,
		Canonical:  render.PageURL(rd.LinkRoot, rd.Mode, item.ResTitle, item.ID, render.SuffixDrip),
		WPPlugin:   rd.Mode == domain.ModeWordPress,
		Simple:     req.Simple,
	}), nil
}

// resolveItem loads the requested content item. When the id is unusable
// (missing, non-numeric upstream, or not found) it tries the k slug against
// the domain's page titles, then falls back to the domain's first page. A
// domain with no content at all yields ErrContentNotFound.
func (s *PageService) resolveItem(ctx context.Context, rd *resolvedDomain, pageID int, keyword string) (*domain.ContentItem, error) {
	if pageID > 0 {
		item, err := repo.GetContentItem(ctx, s.DB, rd.Domain.ID, pageID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	if keyword != "" {
		refs, err := repo.ListContentRefs(ctx, s.DB, rd.Domain.ID)
		if err != nil {
			return nil, err
		}
		want := strings.ToLower(strings.TrimSuffix(keyword, "/"))
		for _, ref := range refs {
			if seotext.Slug(ref.ResTitle) == want {
				return repo.GetContentItem(ctx, s.DB, rd.Domain.ID, ref.ID)
			}
		}
	}
	item, err := repo.FirstContentItem(ctx, s.DB, rd.Domain.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

// buildBody renders the main content fragment: the styled title, the body
// text block (full text preferred, short text as fallback, neither when both
// are too short), and the optional video embed.
func (s *PageService) buildBody(rd *resolvedDomain, item *domain.ContentItem, fullText, shortText string) string {
	title := seotext.CleanTitle(seotext.FilterTextCustom(item.ResTitle))

	var b strings.Builder
	b.WriteString(`<div class="wr-page-content">` + "\n")
	b.WriteString(`<h1 class="wr-title">` + title + `</h1>` + "\n")

	switch {
	case len(strings.TrimSpace(fullText)) > minBodyTextLen:
		b.WriteString(`<div class="wr-fulltext">` + "\n")
		b.WriteString(seotext.FilterTextCustom(fullText))
		b.WriteString("\n</div>\n")
	case len(strings.TrimSpace(shortText)) > minBodyTextLen:
		b.WriteString(`<div class="wr-shorttext">` + "\n")
		b.WriteString(seotext.FilterTextCustom(shortText))
		b.WriteString("\n</div>\n")
	}

	if strings.TrimSpace(item.VideoURL) != "" {
		b.WriteString(`<div class="wr-video"><iframe src="` + item.VideoURL + `" allowfullscreen></iframe></div>` + "\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// linkDomainKeywords wires the domain's keyword list into the body: the main
// keyword first, then up to two supporting keywords, each targeting its own
// content page. A keyword matching the current page is redirected to the
// homepage before the scan so the page never links to itself.
func (s *PageService) linkDomainKeywords(ctx context.Context, rd *resolvedDomain, item *domain.ContentItem, body string) string {
	keywords := repo.DomainKeywords(rd.Domain)
	if len(keywords) == 0 {
		return body
	}
	if len(keywords) > 1+maxSupportingKeywords {
		keywords = keywords[:1+maxSupportingKeywords]
	}

	silo, err := repo.ListSiloPages(ctx, s.DB, rd.Domain.ID)
	if err != nil {
		return body
	}
	bySlug := make(map[string]repo.SiloPage, len(silo))
	for _, p := range silo {
		bySlug[seotext.Slug(p.ResTitle)] = p
	}

	currentSlug := seotext.Slug(item.ResTitle)
	kws := make([]linker.Keyword, 0, len(keywords))
	for i, kw := range keywords {
		slug := seotext.Slug(kw)
		url := render.HomeURL(rd.LinkRoot)
		if p, ok := bySlug[slug]; ok && slug != currentSlug {
			url = render.PageURL(rd.LinkRoot, rd.Mode, p.ResTitle, p.ID, "")
		}
		kws = append(kws, linker.Keyword{Text: kw, URL: url, Main: i == 0})
	}
	return linker.LinkKeywords(body, kws, true)
}

// resolveTemplate walks the fallback chain (primary alternate, the domain's
// own template, the global default) and prepares the first hit with a
// non-empty header. Inactive domains and empty chains force the built-in
// default.
func (s *PageService) resolveTemplate(ctx context.Context, rd *resolvedDomain) (render.Resolved, error) {
	if render.IsInactiveStatus(rd.Domain.Status) {
		return render.DefaultTemplate(), nil
	}

	for _, fetch := range []func() (*domain.FeedTemplate, error){
		func() (*domain.FeedTemplate, error) { return repo.GetPrimaryAltTemplate(ctx, s.DB, rd.Domain.ID) },
		func() (*domain.FeedTemplate, error) { return repo.GetDomainTemplate(ctx, s.DB, rd.Domain.ID) },
		func() (*domain.FeedTemplate, error) { return repo.GetGlobalTemplate(ctx, s.DB) },
	} {
		t, err := fetch()
		if err != nil {
			return render.Resolved{}, err
		}
		if t == nil {
			continue
		}
		if r := render.Prepare(t); strings.TrimSpace(r.Header) != "" {
			return r, nil
		}
	}
	return render.DefaultTemplate(), nil
}
