// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/examtrack/backend/internal/advisor"
	"github.com/examtrack/backend/internal/grading"
	"github.com/examtrack/backend/internal/service"
	"github.com/examtrack/backend/internal/store"
)

// maxBodyBytes caps request bodies; backups are the largest payload.
const maxBodyBytes = 8 << 20

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	store   store.Store
	grading *service.GradingService
	logger  *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(s store.Store, gs *service.GradingService, logger *slog.Logger) *Handler {
	return &Handler{
		store:   s,
		grading: gs,
		logger:  logger,
	}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string   `json:"error" example:"exam not found"`
	Reasons []string `json:"reasons,omitempty"`
}

type validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON decodes the request body into v. On failure it writes a 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// decodeAndValidate decodes the body and runs its Validate method.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// handleGradingError maps service errors: incomplete input becomes a 422
// listing what is missing; everything else falls through to handleStoreError.
func (h *Handler) handleGradingError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var incomplete *grading.IncompleteError
	if errors.As(err, &incomplete) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   grading.ErrInputIncomplete.Error(),
			Reasons: incomplete.Reasons,
		})
		return true
	}
	if errors.Is(err, service.ErrAdvisorDisabled) {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return true
	}
	var analysis *advisor.AnalysisError
	if errors.As(err, &analysis) {
		h.logger.Warn("analysis unavailable", "error", err)
		respondError(w, http.StatusBadGateway, analysis.Error())
		return true
	}
	return h.handleStoreError(w, err, "exam")
}
