package domain

import "context"

// ContactSource retrieves the raw contact payload.
type ContactSource interface {
	// Fetch performs one request and returns the body of a 200 response.
	// Any other status yields a *StatusError.
	Fetch(ctx context.Context) ([]byte, error)
	// Location identifies the source in diagnostics, usually its URL.
	Location() string
}
