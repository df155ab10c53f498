package services

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"strings"
	"testing"

	"github.com/frlmedia/seofeed/internal/domain"
)

func TestRouteToken(t *testing.T) {
	svc := NewFeedService(nil)

	cases := []struct {
		token string
		want  FeedVersion
	}{
		{"AKhpU6QAbMtUDTphRPCezo96CztR9EXR", FeedWP30},
		{"1u1FHacsrHy6jR5ztB6tWfzm30hDPL", FeedWP30},
		{"Nq8dVL6XRTpvmySOVdQLLuxcZpIOp45z94", FeedWP61},
		{"KVFotrmIERNortemkl39jwetsdakfhklo8wer7", FeedWP6},
	}
	for _, tc := range cases {
		got, err := svc.RouteToken(tc.token)
		if err != nil || got != tc.want {
			t.Errorf("RouteToken(%q) = %q, %v; want %q", tc.token, got, err, tc.want)
		}
	}

	if _, err := svc.RouteToken("bogus"); !errors.Is(err, ErrUnknownFeedToken) {
		t.Fatalf("unknown token: want ErrUnknownFeedToken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := newServiceDB(t)
	seed(t, db, &domain.Register{ID: 42, Email: "owner@example.com", APIKey: "sekret"})
	svc := NewFeedService(db)
	ctx := context.Background()

	id, err := svc.Authenticate(ctx, "42", "sekret")
	if err != nil || id != 42 {
		t.Fatalf("Authenticate: id=%d err=%v", id, err)
	}
	if _, err := svc.Authenticate(ctx, "42", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad key: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "7", "sekret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad id: want ErrInvalidCredentials, got %v", err)
	}
}

func TestFooterJSON_EntityEscapedFragment(t *testing.T) {
	db := newServiceDB(t)
	seedTenant(t, db)
	svc := NewFeedService(db)

	raw, err := svc.FooterJSON(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("FooterJSON: %v", err)
	}

	// The wire shape is a single JSON string of entity-escaped markup.
	var payload string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("payload is not a JSON string: %v", err)
	}
	if strings.Contains(payload, "<div") {
		t.Fatalf("payload must not carry raw markup")
	}
	decoded := html.UnescapeString(payload)
	if !strings.Contains(decoded, "seo-footer-section") {
		t.Fatalf("decoded payload missing the footer fragment: %q", decoded)
	}
	if !strings.Contains(decoded, "widget-repair-guide-1bc/") {
		t.Fatalf("decoded payload missing the silo navigation link")
	}
}

func TestPagesFeed(t *testing.T) {
	db := newServiceDB(t)
	seedTenant(t, db)
	db.Model(&domain.Domain{}).Where("id = 1").Update("wp_plugin", 1)
	svc := NewFeedService(db)

	pages, err := svc.PagesFeed(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("PagesFeed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	p := pages[0]
	if p.ID != 1 || p.Title != "Widget Repair Guide" || p.Slug != "widget-repair-guide" {
		t.Fatalf("unexpected page entry: %+v", p)
	}
	if p.URL != "https://acme.com/widget-repair-guide-1/" {
		t.Fatalf("WordPress domains get pretty URLs, got %q", p.URL)
	}
}

func TestDomainFeed(t *testing.T) {
	db := newServiceDB(t)
	seedTenant(t, db)
	seed(t, db, &domain.DomainSettings{ID: 1, DomainID: 1, BlogURL: "https://blog.acme.com/articles"})
	svc := NewFeedService(db)

	info, err := svc.DomainFeed(context.Background(), "acme.com")
	if err != nil {
		t.Fatalf("DomainFeed: %v", err)
	}
	if info.ID != 1 || info.DomainName != "acme.com" {
		t.Fatalf("unexpected domain info: %+v", info)
	}
	if info.LinkDomain != "https://acme.com" || info.PluginMode != "legacy-php" {
		t.Fatalf("unexpected link/mode: %+v", info)
	}
	if len(info.Keywords) != 2 || info.Keywords[0] != "widget repair" {
		t.Fatalf("unexpected keywords: %#v", info.Keywords)
	}
	if info.BlogURL != "https://blog.acme.com/articles" {
		t.Fatalf("settings fields not carried: %+v", info)
	}
}

func TestHandshake(t *testing.T) {
	db := newServiceDB(t)
	seedTenant(t, db)
	db.Model(&domain.Domain{}).Where("id = 1").Update("script_version", "2.5")
	svc := NewFeedService(db)
	ctx := context.Background()

	// Empty version string keeps the stored value.
	if err := svc.Handshake(ctx, "acme.com", 1, 0, ""); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	var d domain.Domain
	db.First(&d, 1)
	if d.WpPlugin != 1 || d.ScriptVersion != "2.5" {
		t.Fatalf("empty version must not clobber the stored one: %+v", d)
	}

	if err := svc.Handshake(ctx, "acme.com", 1, 1, "6.1"); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	db.First(&d, 1)
	if d.ScriptVersion != "6.1" || d.Spydermap != 1 {
		t.Fatalf("handshake not persisted: %+v", d)
	}

	if err := svc.Handshake(ctx, "nowhere.test", 1, 0, "6.1"); !errors.Is(err, ErrDomainNotFound) {
		t.Fatalf("unknown host: want ErrDomainNotFound, got %v", err)
	}
}

func TestHomepageContent_FooterEligibility(t *testing.T) {
	db := newServiceDB(t)
	svc := NewFeedService(db)
	ctx := context.Background()

	hosts := []struct {
		name     string
		host     string
		mutate   map[string]any
		wantFoot bool
	}{
		{"eligible", "a.com", nil, true},
		{"old script", "b.com", map[string]any{"script_version": "2.9"}, false},
		{"wordpress plugin", "c.com", map[string]any{"wp_plugin": 1}, false},
		{"windows variant", "d.com", map[string]any{"iswin": 1}, false},
		{"pretty urls off", "e.com", map[string]any{"usepurl": 0}, false},
	}
	for i, tc := range hosts {
		id := i + 1
		seed(t, db,
			&domain.Domain{ID: id, DomainName: tc.host, Status: 1, ScriptVersion: "3.0"},
			&domain.ContentItem{ID: 100 + id, DomainID: id, ResTitle: "Page"},
		)
		if tc.mutate != nil {
			// Zero values with column defaults have to go through Update.
			if err := db.Model(&domain.Domain{}).Where("id = ?", id).Updates(tc.mutate).Error; err != nil {
				t.Fatalf("%s: mutate: %v", tc.name, err)
			}
		}
	}

	for _, tc := range hosts {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.HomepageContent(ctx, tc.host)
			if err != nil {
				t.Fatalf("HomepageContent: %v", err)
			}
			gotFoot := strings.Contains(out, "seo-footer-section")
			if gotFoot != tc.wantFoot {
				t.Fatalf("footer served = %v, want %v (out %q)", gotFoot, tc.wantFoot, out)
			}
			if !tc.wantFoot && out != "<!-- Articles.php - Action not empty or conditions not met -->" {
				t.Fatalf("ineligible domains get the placeholder comment, got %q", out)
			}
		})
	}
}

func TestFeedStats(t *testing.T) {
	db := newServiceDB(t)
	seedTenant(t, db)
	seed(t, db, &domain.ContentItem{ID: 2, DomainID: 1, ResTitle: "Second"})
	svc := NewFeedService(db)

	count, latest, err := svc.FeedStats(context.Background(), "acme.com")
	if err != nil || count != 2 || latest == nil {
		t.Fatalf("FeedStats: %d %v %v", count, latest, err)
	}

	if _, _, err := svc.FeedStats(context.Background(), "nowhere.test"); !errors.Is(err, ErrDomainNotFound) {
		t.Fatalf("unknown host: want ErrDomainNotFound, got %v", err)
	}
}
