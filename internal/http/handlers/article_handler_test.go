package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frlmedia/seofeed/internal/domain"
	"github.com/frlmedia/seofeed/internal/services"
)

const testFeedToken = "AKhpU6QAbMtUDTphRPCezo96CztR9EXR"

func newFeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:feed_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Domain{}, &domain.DomainSettings{}, &domain.ContentItem{},
		&domain.SupportContent{}, &domain.DripContent{}, &domain.Category{},
		&domain.FeedTemplate{}, &domain.LinkPlacement{}, &domain.Service{},
		&domain.Register{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newFeedRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newFeedDB(t)
	article := &ArticleHandler{
		Pages: services.NewPageService(db, 1),
		Feeds: services.NewFeedService(db),
	}
	articles := &ArticlesHandler{Feeds: article.Feeds}

	r := gin.New()
	r.GET("/feed/Article.php", article.Article)
	r.GET("/feed/Articles.php", articles.Articles)
	r.POST("/feed/Articles.php", articles.Articles)
	return r, db
}

func seedFeedTenant(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []any{
		&domain.Domain{
			ID: 1, DomainName: "acme.com", Status: 1, IsHTTPS: 1,
			Keywords: "widget repair",
		},
		&domain.ContentItem{
			ID: 1, DomainID: 1, ResTitle: "Widget Repair Guide",
			ResFullText: "Detailed walkthrough of the widget service process covering the most common failure modes in the field.",
		},
		&domain.Register{ID: 42, Email: "owner@example.com", APIKey: "sekret"},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func doGet(r *gin.Engine, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestArticle_RendersPage(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	w := doGet(r, "/feed/Article.php?domain=acme.com&pageid=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `<h1 class="wr-title">Widget Repair Guide</h1>`) {
		t.Fatalf("page body missing title heading")
	}
}

func TestArticle_MissingDomain(t *testing.T) {
	r, _ := newFeedRouter(t)

	w := doGet(r, "/feed/Article.php", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Code != ErrCodeBadRequest {
		t.Fatalf("unexpected envelope: %s (%v)", w.Body.String(), err)
	}
}

func TestArticle_LegacyErrorComments(t *testing.T) {
	r, db := newFeedRouter(t)
	if err := db.Create(&domain.Domain{ID: 2, DomainName: "rejected.com", Status: 6}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := doGet(r, "/feed/Article.php?domain=nowhere.test", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "<!-- Invalid Domain -->" {
		t.Fatalf("invalid domain: %d %q", w.Code, w.Body.String())
	}

	w = doGet(r, "/feed/Article.php?domain=rejected.com", nil)
	if w.Code != http.StatusForbidden || w.Body.String() != "<!-- Domain Rejected -->" {
		t.Fatalf("rejected domain: %d %q", w.Code, w.Body.String())
	}
}

func pluginQuery(extra map[string]string) string {
	v := url.Values{}
	v.Set("domain", "acme.com")
	v.Set("apiid", "42")
	v.Set("apikey", "sekret")
	v.Set("kkyy", testFeedToken)
	for k, val := range extra {
		v.Set(k, val)
	}
	return "/feed/Article.php?" + v.Encode()
}

func TestArticle_PluginDomainFeed(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	w := doGet(r, pluginQuery(map[string]string{"version": "3.1"}), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var info services.DomainInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("not a domain feed: %v", err)
	}
	if info.DomainName != "acme.com" || info.LinkDomain != "https://acme.com" {
		t.Fatalf("unexpected feed: %+v", info)
	}

	// The request also acts as a handshake.
	var d domain.Domain
	db.First(&d, 1)
	if d.WpPlugin != 1 || d.ScriptVersion != "3.1" {
		t.Fatalf("handshake not recorded: %+v", d)
	}
}

func TestArticle_PluginFooterFeed(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	w := doGet(r, pluginQuery(map[string]string{"feededit": "2"}), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	var payload string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("footer feed is not a JSON string: %v", err)
	}
	if !strings.Contains(payload, "seo-footer-section") {
		t.Fatalf("footer fragment missing: %q", payload)
	}
}

func TestArticle_PluginPagesFeedWithETag(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	w := doGet(r, pluginQuery(map[string]string{"feededit": "1"}), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var pages []services.FeedPage
	if err := json.Unmarshal(w.Body.Bytes(), &pages); err != nil || len(pages) != 1 {
		t.Fatalf("unexpected pages feed: %s (%v)", w.Body.String(), err)
	}
	if pages[0].Slug != "widget-repair-guide" {
		t.Fatalf("unexpected slug: %+v", pages[0])
	}

	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	w = doGet(r, pluginQuery(map[string]string{"feededit": "1"}), map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified {
		t.Fatalf("conditional request: status = %d", w.Code)
	}
}

func TestArticle_PluginBadCredentials(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	v := url.Values{}
	v.Set("domain", "acme.com")
	v.Set("apiid", "42")
	v.Set("apikey", "wrong")
	v.Set("kkyy", testFeedToken)
	w := doGet(r, "/feed/Article.php?"+v.Encode(), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Code != ErrCodeUnauthorized {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestArticle_UnknownTokenFallsThroughToPage(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)

	v := url.Values{}
	v.Set("domain", "acme.com")
	v.Set("apiid", "42")
	v.Set("apikey", "sekret")
	v.Set("kkyy", "not-a-real-token")
	w := doGet(r, "/feed/Article.php?"+v.Encode(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `<h1 class="wr-title">`) {
		t.Fatalf("expected the standard page rendering, got %q", w.Body.String()[:60])
	}
}

func TestArticles_RequiresDomainAndAgent(t *testing.T) {
	r, _ := newFeedRouter(t)

	w := doGet(r, "/feed/Articles.php", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing domain: status = %d", w.Code)
	}
	w = doGet(r, "/feed/Articles.php?domain=acme.com", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing agent: status = %d", w.Code)
	}
}

func TestArticles_ServesHomepageContent(t *testing.T) {
	r, db := newFeedRouter(t)
	seedFeedTenant(t, db)
	db.Model(&domain.Domain{}).Where("id = 1").Update("script_version", "3.0")

	w := doGet(r, "/feed/Articles.php?domain=acme.com&agent=wr-plugin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "seo-footer-section") {
		t.Fatalf("expected footer fragment, got %q", w.Body.String())
	}

	// Parameters may arrive in a POST form body as well.
	req := httptest.NewRequest(http.MethodPost, "/feed/Articles.php",
		strings.NewReader("domain=acme.com&agent=wr-plugin"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK || !strings.Contains(w2.Body.String(), "seo-footer-section") {
		t.Fatalf("form POST: %d %q", w2.Code, w2.Body.String())
	}

	w = doGet(r, "/feed/Articles.php?domain=nowhere.test&agent=wr-plugin", nil)
	if w.Code != http.StatusNotFound || w.Body.String() != "<!-- Invalid Domain -->" {
		t.Fatalf("invalid domain: %d %q", w.Code, w.Body.String())
	}
}
