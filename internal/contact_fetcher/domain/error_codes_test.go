package domain

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameOf(t *testing.T) {
	assert.Equal(t, "NO_ERROR", NameOf(0))
	assert.Equal(t, "SYSTEM_ERROR", NameOf(1))
	assert.Equal(t, "INVALID_RESPONSE_ERROR", NameOf(2))
	assert.Equal(t, "RESPONSE_PARSE_ERROR", NameOf(3))

	for _, unknown := range []int{-1, 4, 42, 255} {
		assert.Equal(t, "NO_ERROR", NameOf(unknown), "code %d", unknown)
	}
	assert.Equal(t, "RESPONSE_PARSE_ERROR", ResponseParseError.String())
}

func TestClassifyError(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))

	categorized := NewExitError(InvalidResponseError, "bad status", ErrUnexpectedStatus)
	wrapped := fmt.Errorf("pipeline: %w", categorized)
	assert.Same(t, categorized, ClassifyError(wrapped))

	plain := errors.New("dial tcp: connection refused")
	got := ClassifyError(plain)
	require.NotNil(t, got)
	assert.Equal(t, SystemError, got.Code)
	assert.Equal(t, 1, got.ExitCode())
	assert.Contains(t, got.Message, "connection refused")
	assert.ErrorIs(t, got, plain)
}

func TestExitWithMessage(t *testing.T) {
	var exited []int
	orig := Exiter
	Exiter = func(code int) { exited = append(exited, code) }
	t.Cleanup(func() { Exiter = orig })

	var out bytes.Buffer
	ExitWithMessage(&out, InvalidResponseError, "HTTP response from http://x contains invalid code: 404")

	assert.Equal(t, "Application exiting with error code: INVALID_RESPONSE_ERROR and message: HTTP response from http://x contains invalid code: 404\n", out.String())
	assert.Equal(t, []int{2}, exited)
}

func TestStatusError(t *testing.T) {
	err := &StatusError{URL: "http://example.test/contacts", StatusCode: 503}
	assert.Equal(t, "HTTP response from http://example.test/contacts contains invalid code: 503", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}
