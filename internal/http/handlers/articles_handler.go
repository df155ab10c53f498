// Package handlers – Articles.php endpoint.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frlmedia/seofeed/internal/services"
)

// ArticlesHandler serves /Articles.php, the homepage/footer content endpoint.
// The deployed plugins call it over both GET and POST with parameters spread
// across the query string and the body.
type ArticlesHandler struct {
	Feeds *services.FeedService
}

// Articles handles GET and POST /feed/Articles.php
//
// @Summary      Homepage footer content
// @Description  Returns the footer navigation fragment for domains running plugin script 3+ in plain PHP mode; other domains get a placeholder comment. Requires domain and agent parameters.
// @Tags         feed
// @Accept       json
// @Produce      html
// @Param        domain  query  string  true  "Tenant hostname"
// @Param        agent   query  string  true  "Calling user agent"
// @Success      200  {string}  string  "footer fragment"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {string}  string  "<!-- Domain Rejected -->"
// @Failure      404  {string}  string  "<!-- Invalid Domain -->"
// @Failure      500  {object}  ErrorResponse
// @Router       /Articles.php [get]
func (h *ArticlesHandler) Articles(c *gin.Context) {
	args := MergeRequest(c)

	host := args.Get("domain")
	if host == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "domain parameter required")
		return
	}
	if args.Get("agent") == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "agent parameter required")
		return
	}

	body, err := h.Feeds.HomepageContent(c.Request.Context(), host)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDomainNotFound):
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<!-- Invalid Domain -->"))
		case errors.Is(err, services.ErrDomainRejected):
			c.Data(http.StatusForbidden, "text/html; charset=utf-8", []byte("<!-- Domain Rejected -->"))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeRenderFailed, "could not build content")
		}
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}
