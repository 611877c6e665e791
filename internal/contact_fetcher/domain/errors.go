package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus indicates the source answered with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrMissingContactsField indicates the payload has no top-level "contacts" key.
	ErrMissingContactsField = errors.New(`missing "contacts" field`)
	// ErrUnexpectedShape indicates well-formed JSON that is not the expected document shape.
	ErrUnexpectedShape = errors.New("unexpected payload shape")
	// ErrMalformedContact indicates a contacts element that cannot be decoded into a Contact.
	ErrMalformedContact = errors.New("malformed contact")
	// ErrMalformedPayload indicates the response body is not valid JSON.
	ErrMalformedPayload = errors.New("malformed JSON payload")
	// ErrInvalidFilterPattern indicates a filter that is not a valid regular expression.
	ErrInvalidFilterPattern = errors.New("invalid filter pattern")
)

// StatusError reports a non-200 answer from the contact source.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP response from %s contains invalid code: %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// FilterPatternError reports a filter pattern that failed to compile.
type FilterPatternError struct {
	Pattern string
	Err     error
}

func (e *FilterPatternError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Pattern, e.Err)
}

func (e *FilterPatternError) Unwrap() []error { return []error{ErrInvalidFilterPattern, e.Err} }
