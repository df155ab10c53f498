// Error codes carried in the ErrorResponse envelope. The generic codes
// mirror their HTTP status; render_failed and feed_failed mark failures in
// page assembly and plugin feed construction that a bare 500 would not
// distinguish. Codes are stable, clients branch on them.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeRenderFailed     = "render_failed"
	ErrCodeFeedFailed       = "feed_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
