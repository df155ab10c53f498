// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file covers request correlation and structured access logging:
//
//   - RequestID() gives every request a stable correlation ID, either taken
//     from the incoming X-Request-ID header or freshly generated.
//   - AccessLog() emits one structured zerolog line per request and stores a
//     request-scoped logger in the Gin context for handlers to enrich.
//   - Recovery() turns panics into JSON 500 responses carrying the
//     correlation ID, with the stack trace going to the log only.
//   - LoggerFrom() fetches the request-scoped logger back out of the context.
//
// Install RequestID first, then AccessLog, then Recovery, so that both the
// access line and any panic report carry the correlation ID. Feed requests
// arrive with long legacy query strings (rsid, kkyy, page payloads), so the
// raw query is clipped before logging.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// requestIDKey is the Gin context key holding the correlation ID.
	requestIDKey = "requestID"
	// requestIDHeader propagates the correlation ID on requests and responses.
	requestIDHeader = "X-Request-ID"
	// maxQueryLogBytes caps how much of the raw query string is logged.
	maxQueryLogBytes = 2048
)

// RequestID attaches a correlation identifier to each request.
//
// An incoming X-Request-ID header (any casing) is reused; otherwise a new
// UUIDv4 is generated. The ID is echoed on the response header and stored in
// the Gin context under the "requestID" key. Place this first in the chain.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// AccessLog writes one structured log line per request.
//
// The line records method, route (falling back to the raw URL path when no
// route matched), serving host, remote IP, user agent, referer, clipped query
// string, correlation ID, request size, response status, latency and bytes
// written. A request-scoped zerolog.Logger carrying the request fields is
// stored under the "logger" context key for handlers and services.
//
// Level selection: error for 5xx or when Gin collected errors, warn for 4xx,
// info otherwise.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		route := c.FullPath()
		if route == "" {
			// No matched route (404 and friends).
			route = c.Request.URL.Path
		}

		l := log.With().
			Str("request_id", ctxString(rid)).
			Str("method", c.Request.Method).
			Str("path", route).
			Str("host", c.Request.Host).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("referer", c.Request.Referer()).
			Str("query", clip(c.Request.URL.RawQuery, maxQueryLogBytes)).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()

		c.Set("logger", &l)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		out := l.With().
			Int("status", status).
			Dur("latency", latency).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			out.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 500:
			out.Error().Msg("request")
		case status >= 400:
			out.Warn().Msg("request")
		default:
			out.Info().Msg("request")
		}
	}
}

// Recovery intercepts panics, logs the stack trace and answers with a JSON
// 500 body of the standard error envelope shape. When the handler already
// wrote part of a response the body is left alone and only the status is
// forced to 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				rid, _ := c.Get(requestIDKey)
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("request_id", ctxString(rid)).
					Msg("panic recovered")

				if !c.Writer.Written() {
					c.Header("Content-Type", "application/json")
					c.Header(requestIDHeader, ctxString(rid))
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"request_id": ctxString(rid),
						"code":       "internal_error",
						"message":    "internal server error",
					})
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped zerolog.Logger stored by AccessLog.
// When none is attached it returns a plain logger so callers never need a
// nil check.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// ctxString unwraps a context value as a string, empty for anything else.
func ctxString(v any) string {
	s, _ := v.(string)
	return s
}

// clip truncates s to max bytes and appends an ellipsis. Byte truncation is
// fine here since the result only feeds logs. A max <= 0 disables clipping.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
