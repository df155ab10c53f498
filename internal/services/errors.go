// Package services defines the business logic for page assembly and the
// WordPress plugin feeds. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; mapping
// them to HTTP statuses (or the HTML-comment placeholders the legacy
// endpoints emit) is performed at the handler layer.
package services

import "errors"

var (
	// ErrDomainNotFound indicates that the requested hostname does not map to
	// an active tenant domain.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrDomainRejected is returned for domains whose status blocks serving
	// (legacy status code 6).
	ErrDomainRejected = errors.New("domain rejected")

	// ErrContentNotFound indicates that the requested content item does not
	// exist on the resolved domain.
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidCredentials is returned when the plugin apiid/apikey pair
	// fails validation against the register table.
	ErrInvalidCredentials = errors.New("invalid api credentials")

	// ErrUnknownFeedToken is returned when a kkyy token does not route to any
	// known plugin feed handler.
	ErrUnknownFeedToken = errors.New("unknown feed token")
)
