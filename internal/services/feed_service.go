// Package services – FeedService
//
// FeedService implements the WordPress-plugin JSON feeds: token routing to
// the feed generation the installed plugin speaks, API credential checks,
// the footer fragment feed, the page-listing feed, the default domain
// metadata feed, and the plugin handshake that records the caller's version.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/render"
	"github.com/frlmedia/seofeed/internal/repo"
	"github.com/frlmedia/seofeed/internal/seotext"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FeedVersion identifies which feed generation a plugin install speaks. The
// routing token in the request selects it.
type FeedVersion string

// Known feed generations, oldest last.
const (
	FeedWP30 FeedVersion = "apifeedwp30"
	FeedWP61 FeedVersion = "apifeedwp6.1"
	FeedWP6  FeedVersion = "apifeedwp6"
)

// feedTokens maps the opaque routing tokens the deployed plugins send to the
// feed generation they expect. The tokens are long-lived; installs in the
// field still send the oldest ones.
var feedTokens = map[string]FeedVersion{
	"AKhpU6QAbMtUDTphRPCezo96CztR9EXR":       FeedWP30,
	"1u1FHacsrHy6jR5ztB6tWfzm30hDPL":         FeedWP30,
	"Nq8dVL6XRTpvmySOVdQLLuxcZpIOp45z94":     FeedWP61,
	"KVFotrmIERNortemkl39jwetsdakfhklo8wer7": FeedWP6,
}

// FeedService serves the WordPress-plugin JSON endpoints.
type FeedService struct {
	DB *gorm.DB
}

// NewFeedService constructs a FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{DB: db}
}

// RouteToken resolves a plugin routing token to its feed generation.
func (s *FeedService) RouteToken(token string) (FeedVersion, error) {
	if v, ok := feedTokens[token]; ok {
		return v, nil
	}
	return "", ErrUnknownFeedToken
}

// Authenticate checks an apiid/apikey pair against the register table and
// returns the account id. Unknown or mismatched pairs yield
// ErrInvalidCredentials, not a database error.
func (s *FeedService) Authenticate(ctx context.Context, apiID, apiKey string) (int, error) {
	id, err := repo.ValidateAPICredentials(ctx, s.DB, apiID, apiKey)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

// FooterHTML builds the footer fragment the plugin injects into the host
// page.
func (s *FeedService) FooterHTML(ctx context.Context, host string) (string, error) {
	tr := otel.Tracer("services/FeedService")
	ctx, span := tr.Start(ctx, "FooterHTML",
		trace.WithAttributes(attribute.String("feed.host", host)),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return "", err
	}
	silo, err := repo.ListSiloPages(ctx, s.DB, rd.Domain.ID)
	if err != nil {
		return "", err
	}
	return render.BuildFooterWP(render.FooterInput{
		Domain:   rd.Domain,
		Settings: rd.Settings,
		Silo:     silo,
		IsBRON:   rd.Tier == domain.TierBRON,
		Now:      time.Now(),
	}), nil
}

// FooterJSON wraps FooterHTML in the wire shape the plugin expects: a single
// JSON string whose value is the entity-escaped fragment. The plugin decodes
// the entities client-side, so the escaping is part of the contract.
func (s *FeedService) FooterJSON(ctx context.Context, host string) ([]byte, error) {
	footer, err := s.FooterHTML(ctx, host)
	if err != nil {
		return nil, err
	}
	return json.Marshal(html.EscapeString(footer))
}

// FeedPage is one entry of the page-listing feed consumed by the plugin's
// rewrite-rule generator.
type FeedPage struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

// PagesFeed lists every active content page of a domain with its slug and
// canonical URL.
func (s *FeedService) PagesFeed(ctx context.Context, host string) ([]FeedPage, error) {
	tr := otel.Tracer("services/FeedService")
	ctx, span := tr.Start(ctx, "PagesFeed",
		trace.WithAttributes(attribute.String("feed.host", host)),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return nil, err
	}
	silo, err := repo.ListSiloPages(ctx, s.DB, rd.Domain.ID)
	if err != nil {
		return nil, err
	}
	pages := make([]FeedPage, 0, len(silo))
	for _, p := range silo {
		pages = append(pages, FeedPage{
			ID:    p.ID,
			Title: seotext.CleanTitle(seotext.FilterTextCustom(p.ResTitle)),
			Slug:  seotext.Slug(p.ResTitle),
			URL:   render.PageURL(rd.LinkRoot, rd.Mode, p.ResTitle, p.ID, ""),
		})
	}
	return pages, nil
}

// DomainInfo is the default feed payload: the domain metadata the plugin
// caches between handshakes.
type DomainInfo struct {
	ID         int      `json:"id"`
	DomainName string   `json:"domain_name"`
	Status     int      `json:"status"`
	Keywords   []string `json:"keywords"`
	LinkDomain string   `json:"link_domain"`
	PluginMode string   `json:"plugin_mode"`

	WrName    string `json:"wr_name,omitempty"`
	WrAddress string `json:"wr_address,omitempty"`
	WrPhone   string `json:"wr_phone,omitempty"`

	BlogURL string `json:"blog_url,omitempty"`
	FaqURL  string `json:"faq_url,omitempty"`
}

// DomainFeed builds the default domain-metadata payload.
func (s *FeedService) DomainFeed(ctx context.Context, host string) (*DomainInfo, error) {
	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return nil, err
	}
	info := &DomainInfo{
		ID:         rd.Domain.ID,
		DomainName: rd.Domain.DomainName,
		Status:     rd.Domain.Status,
		Keywords:   repo.DomainKeywords(rd.Domain),
		LinkDomain: rd.LinkRoot,
		PluginMode: rd.Mode.String(),
		WrName:     rd.Domain.WrName,
		WrAddress:  rd.Domain.WrAddress,
		WrPhone:    rd.Domain.WrPhone,
	}
	if rd.Settings != nil {
		info.BlogURL = rd.Settings.BlogURL
		info.FaqURL = rd.Settings.FaqURL
	}
	return info, nil
}

// Handshake records the plugin flags a feed request reports: whether the WP
// plugin is installed, whether sitemap generation is on, and the plugin
// script version. Empty version strings leave the stored value alone.
func (s *FeedService) Handshake(ctx context.Context, host string, wpPlugin, spydermap int, scriptVersion string) error {
	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return err
	}
	if strings.TrimSpace(scriptVersion) == "" {
		scriptVersion = rd.Domain.ScriptVersion
	}
	err = repo.UpdatePluginHandshake(ctx, s.DB, rd.Domain.ID, wpPlugin, spydermap, scriptVersion)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrDomainNotFound
	}
	return err
}

// HomepageContent serves the legacy homepage/footer endpoint. Domains running
// plugin script 3.x or newer in plain PHP mode (not the WordPress or Windows
// variants, pretty URLs on) get the footer fragment; everything else gets an
// empty placeholder the plugin ignores.
func (s *FeedService) HomepageContent(ctx context.Context, host string) (string, error) {
	tr := otel.Tracer("services/FeedService")
	ctx, span := tr.Start(ctx, "HomepageContent",
		trace.WithAttributes(attribute.String("feed.host", host)),
	)
	defer span.End()

	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return "", err
	}
	d := rd.Domain
	if d.ScriptVersionAtLeast(3) && d.WpPlugin != 1 && d.IsWin != 1 && d.UsePURL != 0 {
		silo, err := repo.ListSiloPages(ctx, s.DB, d.ID)
		if err != nil {
			return "", err
		}
		return render.BuildFooterWP(render.FooterInput{
			Domain:   d,
			Settings: rd.Settings,
			Silo:     silo,
			IsBRON:   rd.Tier == domain.TierBRON,
			Now:      time.Now(),
		}), nil
	}
	return "<!-- Articles.php - Action not empty or conditions not met -->", nil
}

// FeedStats exposes the content-page count and last modification time so the
// transport layer can answer conditional requests.
func (s *FeedService) FeedStats(ctx context.Context, host string) (int64, *time.Time, error) {
	rd, err := resolveDomain(ctx, s.DB, host)
	if err != nil {
		return 0, nil, err
	}
	return repo.FeedStats(ctx, s.DB, rd.Domain.ID)
}
