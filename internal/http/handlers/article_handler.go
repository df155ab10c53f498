// Package handlers – Article.php endpoint.
//
// This file implements the main content router. One URL serves two worlds:
// authenticated WordPress-plugin feed requests (apiid/apikey/kkyy present)
// and unauthenticated legacy page requests routed by the Action parameter.
// The path and parameter names are part of the wire contract with plugin
// installs in the field and cannot change.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frlmedia/seofeed/internal/services"
)

// ArticleHandler serves /Article.php.
type ArticleHandler struct {
	Pages *services.PageService
	Feeds *services.FeedService
}

// Article handles GET /feed/Article.php
//
// @Summary      Legacy content router
// @Description  Renders content pages (Action=1 reference, Action=2 business collective, Action=3 drip) or, when apiid/apikey/kkyy are present, serves the WordPress plugin JSON feeds (feededit=1 pages, feededit=2 footer, default domain metadata).
// @Tags         feed
// @Produce      html,json
// @Param        domain    query  string  true   "Tenant hostname"
// @Param        Action    query  string  false  "Page action (1, 2, 3)"
// @Param        pageid    query  int     false  "Content page id"
// @Param        k         query  string  false  "Requested keyword"
// @Param        apiid     query  string  false  "Plugin API account id"
// @Param        apikey    query  string  false  "Plugin API key"
// @Param        kkyy      query  string  false  "Plugin feed routing token"
// @Param        feededit  query  string  false  "Feed selector (1 pages, 2 footer)"
// @Success      200  {string}  string  "rendered page or feed payload"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {string}  string  "<!-- Domain Rejected -->"
// @Failure      404  {string}  string  "<!-- Invalid Domain -->"
// @Failure      500  {object}  ErrorResponse
// @Router       /Article.php [get]
func (h *ArticleHandler) Article(c *gin.Context) {
	args := MergeRequest(c)

	if args.Get("apiid") != "" && args.Get("apikey") != "" && args.Get("kkyy") != "" {
		if h.pluginFeed(c, args) {
			return
		}
		// Unknown token: fall through to the standard routing, as the
		// legacy router did.
	}

	host := args.Get("domain")
	if host == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain parameter required")
		return
	}

	req := services.PageRequest{
		Host:    host,
		PageID:  args.Int("pageid", args.Int("PageID", 0)),
		Keyword: args.Get("k"),
		City:    args.First("city", "cty"),
		State:   args.First("state", "st"),
		Simple:  args.Has("cScript") && args.Get("blnComplete") != "1",
	}

	var (
		page string
		err  error
	)
	switch args.Get("Action") {
	case "2":
		page, err = h.Pages.BusinessCollectivePage(c.Request.Context(), req)
	case "3":
		page, err = h.Pages.DripPage(c.Request.Context(), req)
	default:
		page, err = h.Pages.ReferencePage(c.Request.Context(), req)
	}
	if err != nil {
		writePageError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// pluginFeed serves the authenticated plugin feeds. Returns false when the
// routing token is unknown so the caller can fall through.
func (h *ArticleHandler) pluginFeed(c *gin.Context, args RequestArgs) bool {
	ctx := c.Request.Context()

	if _, err := h.Feeds.RouteToken(args.Get("kkyy")); err != nil {
		return false
	}

	host := args.Get("domain")
	if host == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain parameter required")
		return true
	}
	if _, err := h.Feeds.Authenticate(ctx, args.Get("apiid"), args.Get("apikey")); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid API credentials")
		} else {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "credential check failed")
		}
		return true
	}

	// Record what the plugin reports about itself. Failures here must not
	// break the feed response.
	_ = h.Feeds.Handshake(ctx, host, 1, args.Int("spydermap", 0), args.Get("version"))

	switch args.Get("feededit") {
	case "2":
		body, err := h.Feeds.FooterJSON(ctx, host)
		if err != nil {
			writeFeedError(c, err)
			return true
		}
		c.Data(http.StatusOK, "application/json", body)
	case "1":
		pages, err := h.Feeds.PagesFeed(ctx, host)
		if err != nil {
			writeFeedError(c, err)
			return true
		}
		if count, last, err := h.Feeds.FeedStats(ctx, host); err == nil && last != nil {
			etag := fmt.Sprintf(`W/"pages-%d-%d"`, count, last.UnixNano())
			c.Header("ETag", etag)
			if c.GetHeader("If-None-Match") == etag {
				c.Status(http.StatusNotModified)
				return true
			}
		}
		ok(c, http.StatusOK, pages)
	default:
		info, err := h.Feeds.DomainFeed(ctx, host)
		if err != nil {
			writeFeedError(c, err)
			return true
		}
		ok(c, http.StatusOK, info)
	}
	return true
}

// writePageError maps service errors of the page pipeline to the legacy HTML
// comment responses crawlers and plugins expect.
func writePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDomainNotFound):
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<!-- Invalid Domain -->"))
	case errors.Is(err, services.ErrDomainRejected):
		c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte("<!-- Domain Rejected -->"))
	case errors.Is(err, services.ErrContentNotFound):
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<!-- No Content -->"))
	default:
		fail(c, http.StatusInternalServerError, ErrCodeRenderFailed, "could not render page")
	}
}

// writeFeedError maps service errors of the JSON feeds to envelope responses.
func writeFeedError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDomainNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "invalid domain")
	case errors.Is(err, services.ErrDomainRejected):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "domain rejected")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeFeedFailed, "could not build feed")
	}
}
