package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, contacts []domain.Contact) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(NewRouter(NewHandler(contacts, logger), prometheus.NewRegistry()))
	t.Cleanup(server.Close)
	return server
}

func TestListContacts(t *testing.T) {
	contacts := []domain.Contact{
		domain.NewContact("Bob", "2", "Y"),
		domain.NewContact("Ann", "1", "X"),
	}
	server := newTestServer(t, contacts)

	resp, err := http.Get(server.URL + "/contacts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body ContactsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, contacts, body.Contacts)
}

func TestListContacts_EmptyFixtureServesEmptyArray(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/contacts")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contacts":[]}`, string(raw))
}

func TestListContacts_ForcedStatus(t *testing.T) {
	server := newTestServer(t, nil)

	tests := []struct {
		query string
		want  int
	}{
		{"?status=404", http.StatusNotFound},
		{"?status=503", http.StatusServiceUnavailable},
		{"?status=200", http.StatusOK},
		{"?status=abc", http.StatusBadRequest},
		{"?status=42", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := http.Get(server.URL + "/contacts" + tt.query)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health["status"])
	assert.NotEmpty(t, health["instance_id"])

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw),
		`phonebook_stub_http_requests_total{method="GET",path="/healthz",status_code="200"} 1`))
}

func TestLoadContacts(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "contacts.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"name":"Ann","phone_number":"1","address":"X"}]`), 0o600))
	contacts, err := LoadContacts(good)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{domain.NewContact("Ann", "1", "X")}, contacts)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"contacts":`), 0o600))
	_, err = LoadContacts(bad)
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadContacts(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}
