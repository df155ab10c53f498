// Package handlers implements the HTTP endpoints of the feed service.
//
// This file holds the response helpers shared by every endpoint. Success
// paths are mixed: feed operations answer JSON while page operations answer
// raw HTML, but every failure that is not a legacy comment body goes through
// the same JSON envelope so clients and log tooling see one error shape.
//
// A failed request looks like:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "resource not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frlmedia/seofeed/internal/http/middleware"
)

// ErrorResponse is the JSON error envelope. RequestID echoes the response
// X-Request-ID header so a client report can be matched to server logs; Code
// is one of the stable constants in errors.go; Message is display-safe text.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"resource not found"`
}

// fail aborts the request with the JSON error envelope. Server-side failures
// (5xx) are additionally logged through the request-scoped logger; client
// errors only surface in the access line.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail exposes fail to the router for its NoRoute and NoMethod fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a JSON success body with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
