package kb

import "errors"

var (
	// ErrNotFound means the knowledge base has no answer for the request:
	// an unknown entity, a property with no claims, or a missing sitelink.
	// Callers treat it as absence, not as a failure.
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse means the remote service answered with JSON
	// that does not match the documented shape.
	ErrMalformedResponse = errors.New("malformed response")
)
