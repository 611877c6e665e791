// Package http serves a contacts fixture in the shape the contact fetcher
// expects, for local development against a known payload.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

// ContactsResponse is the document served on GET /contacts.
type ContactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

// LoadContacts reads a JSON array of contacts from path.
func LoadContacts(path string) ([]domain.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts fixture %s: %w", path, err)
	}
	var contacts []domain.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("failed to parse contacts fixture %s: %w", path, err)
	}
	return contacts, nil
}

// Handler serves the fixture.
type Handler struct {
	contacts   []domain.Contact
	instanceID uuid.UUID
	logger     *slog.Logger
}

// NewHandler creates a Handler serving contacts.
func NewHandler(contacts []domain.Contact, logger *slog.Logger) *Handler {
	if contacts == nil {
		contacts = []domain.Contact{} // serve [] rather than null
	}
	return &Handler{
		contacts:   contacts,
		instanceID: uuid.New(),
		logger:     logger,
	}
}

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// RegisterRoutes sets up the stub routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/contacts", h.ListContacts)
	r.Get("/healthz", h.Health)
}

// ListContacts returns the fixture. A "status" query parameter forces that
// status code instead, to exercise the fetcher's failure paths.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("status"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code < 100 || code > 599 {
			respondWithError(w, http.StatusBadRequest, "status must be an HTTP status code")
			return
		}
		if code != http.StatusOK {
			h.logger.InfoContext(r.Context(), "Forcing response status", "status_code", code)
			respondWithError(w, code, http.StatusText(code))
			return
		}
	}

	h.logger.DebugContext(r.Context(), "Serving contacts", "count", len(h.contacts))
	respondWithJSON(w, http.StatusOK, ContactsResponse{Contacts: h.contacts})
}

// Health reports liveness along with this instance's ID.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"instance_id": h.instanceID.String(),
	})
}
