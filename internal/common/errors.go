// Package common defines shared constants and sentinel errors used across
// the back-office client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Backend client errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")

	// Session errors (token missing, malformed, expired, or lacking claims).
	ErrSessionInvalid = errors.New("session invalid")

	// Valid session, but the role does not match the requested screen.
	ErrUnauthorizedRole = errors.New("unauthorized for this screen")

	// Dependent-selection errors. Both are local and recoverable:
	// the form stays usable after either one.
	ErrFetchFailed    = errors.New("fetch failed")
	ErrStaleReference = errors.New("stale reference")
)
