// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger used in
// production. The legacy plugin protocol sends its credentials in the query
// string (apikey, kkyy) rather than in headers, and consumer sites sometimes
// put contact addresses in page parameters, so the logger scrubs both named
// parameters and recognizable PII patterns before anything reaches the log
// stream. Request and response bodies are never logged.
//
// Scrubbing reduces but does not eliminate leak risk; callers should still
// keep secrets out of URLs where the protocol allows it.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Pattern redaction order matters: UUIDs first, otherwise the loose phone
// pattern eats the digit runs inside them.
var (
	redactUUIDRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	redactEmailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	redactPhoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

func redactPatterns(s string) string {
	if s == "" {
		return s
	}
	s = redactUUIDRE.ReplaceAllString(s, "[REDACTED:id]")
	s = redactEmailRE.ReplaceAllString(s, "[REDACTED:email]")
	s = redactPhoneRE.ReplaceAllString(s, "[REDACTED:phone]")
	return s
}

// RedactOptions configures scrub behavior beyond the built-in patterns.
//
// MaskHeaders lists extra header names whose values are replaced wholesale
// with "[REDACTED]", case-insensitively, on top of the always-masked
// Authorization, Cookie and Set-Cookie. MaskParams lists query parameter
// names whose values get the same treatment in the logged query string.
type RedactOptions struct {
	MaskHeaders []string
	MaskParams  []string
}

// scrubber holds the compiled masking state for one RedactingLogger.
type scrubber struct {
	paramREs    []*regexp.Regexp
	maskHeaders map[string]struct{}
}

func newScrubber(opts RedactOptions) *scrubber {
	s := &scrubber{
		maskHeaders: map[string]struct{}{
			"authorization": {},
			"cookie":        {},
			"set-cookie":    {},
		},
	}
	for _, p := range opts.MaskParams {
		if p = strings.TrimSpace(p); p != "" {
			s.paramREs = append(s.paramREs, regexp.MustCompile(`(?i)(\b`+regexp.QuoteMeta(p)+`=)[^&]*`))
		}
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			s.maskHeaders[h] = struct{}{}
		}
	}
	return s
}

// query masks the named credential parameters, then pattern-redacts the rest.
func (s *scrubber) query(raw string) string {
	for _, re := range s.paramREs {
		raw = re.ReplaceAllString(raw, "${1}[REDACTED]")
	}
	return redactPatterns(raw)
}

// headers returns a loggable copy of h with masked and redacted values.
func (s *scrubber) headers(h map[string][]string) map[string]string {
	safe := make(map[string]string, len(h))
	for k, vv := range h {
		if _, masked := s.maskHeaders[strings.ToLower(k)]; masked {
			safe[k] = "[REDACTED]"
			continue
		}
		safe[k] = redactPatterns(strings.Join(vv, ", "))
	}
	return safe
}

// RedactingLogger logs one structured line per request with credentials and
// PII scrubbed from the query string and headers. Level follows the
// response: error for 5xx, warn for 4xx, info otherwise. The request ID is
// taken from the response header set by RequestID, falling back to the
// request header when the middleware ran without it.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	scrub := newScrubber(opts)

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		safeQuery := scrub.query(c.Request.URL.RawQuery)
		safeHeaders := scrub.headers(c.Request.Header)

		c.Next()

		status := c.Writer.Status()
		reqID := c.Writer.Header().Get("X-Request-ID")
		if reqID == "" {
			reqID = c.GetHeader("X-Request-ID")
		}

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}

		ev.
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", safeQuery).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
