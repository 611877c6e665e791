package phonebooksource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

// HTTPSource fetches the contact payload with a single GET.
type HTTPSource struct {
	logger     *slog.Logger
	httpClient *http.Client
	sourceURL  string
}

var _ domain.ContactSource = (*HTTPSource)(nil)

// NewHTTPSource creates an HTTPSource. A nil httpClient gets a client with
// the given timeout; a zero timeout means none.
func NewHTTPSource(logger *slog.Logger, sourceURL string, timeout time.Duration, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{
		logger:     logger.With("source", "http"),
		httpClient: httpClient,
		sourceURL:  sourceURL,
	}
}

// Location returns the configured URL.
func (s *HTTPSource) Location() string {
	return s.sourceURL
}

// Fetch performs the GET and returns the body of a 200 response.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(s.sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", s.sourceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid source URL %q: unsupported scheme %q", s.sourceURL, u.Scheme)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request for %s: %w", s.sourceURL, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	s.logger.DebugContext(ctx, "Sending HTTP request to contact source", "url", s.sourceURL)

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to send request to contact source", "url", s.sourceURL, "error", err)
		return nil, fmt.Errorf("failed to send request to %s: %w", s.sourceURL, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused; the body is not reported.
		_, _ = io.Copy(io.Discard, httpResp.Body)
		s.logger.WarnContext(ctx, "Contact source answered with unexpected status", "url", s.sourceURL, "status_code", httpResp.StatusCode)
		return nil, &domain.StatusError{URL: s.sourceURL, StatusCode: httpResp.StatusCode}
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to read contact source response body", "url", s.sourceURL, "error", err)
		return nil, fmt.Errorf("failed to read response body from %s: %w", s.sourceURL, err)
	}
	s.logger.DebugContext(ctx, "Received HTTP response from contact source", "status_code", httpResp.StatusCode, "bytes", len(body))

	return body, nil
}
