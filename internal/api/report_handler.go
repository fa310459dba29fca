package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/grading"
	"github.com/examtrack/backend/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ── Request / Response types ────────────────────────────────────────────────

type AnalysisResponse struct {
	Analysis string                     `json:"analysis" example:"Your Law results improved..."`
	Report   grading.ConsolidatedReport `json:"report"`
}

// parseFilter reads the kind, board and year query parameters.
func parseFilter(r *http.Request) (grading.Filter, error) {
	q := r.URL.Query()
	var f grading.Filter

	if k := strings.TrimSpace(q.Get("kind")); k != "" {
		kind, err := exam.ParseKind(k)
		if err != nil {
			return f, errors.New("kind must be contest or mock")
		}
		f.Kind = kind
	}
	f.Board = strings.TrimSpace(q.Get("board"))
	if y := strings.TrimSpace(q.Get("year")); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1 {
			return f, errors.New("year must be a positive integer")
		}
		f.Year = year
	}
	return f, nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// consolidated aggregates results across exams by subject name.
// @Summary      Consolidated report
// @Description  Sum per-subject results across every graded exam matching the filters, with net and gross percentages and a Total row.
// @Tags         Reports
// @Produce      json
// @Param        kind   query     string  false  "contest or mock"
// @Param        board  query     string  false  "examining board (case-insensitive)"
// @Param        year   query     int     false  "exam year"
// @Success      200    {object}  grading.ConsolidatedReport
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /reports/consolidated [get]
func (h *Handler) consolidated(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.grading.Consolidate(r.Context(), f)
	if h.handleStoreError(w, err, "exams") {
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

// consolidatedXLSX downloads the consolidated report as a spreadsheet.
// @Summary      Consolidated report spreadsheet
// @Tags         Reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind   query     string  false  "contest or mock"
// @Param        board  query     string  false  "examining board (case-insensitive)"
// @Param        year   query     int     false  "exam year"
// @Success      200    {file}    file
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /reports/consolidated.xlsx [get]
func (h *Handler) consolidatedXLSX(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.grading.Consolidate(r.Context(), f)
	if h.handleStoreError(w, err, "exams") {
		return
	}

	// Render into a buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := report.WriteConsolidatedXLSX(&buf, rep); err != nil {
		h.logger.Error("failed to render spreadsheet", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to render spreadsheet")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=consolidated.xlsx")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// timeline lists graded exams in date order.
// @Summary      Performance timeline
// @Tags         Reports
// @Produce      json
// @Param        kind   query     string  false  "contest or mock"
// @Param        board  query     string  false  "examining board (case-insensitive)"
// @Param        year   query     int     false  "exam year"
// @Success      200    {array}   grading.TimelinePoint
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /reports/timeline [get]
func (h *Handler) timeline(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.grading.Timeline(r.Context(), f)
	if h.handleStoreError(w, err, "exams") {
		return
	}
	if points == nil {
		points = []grading.TimelinePoint{}
	}
	respondJSON(w, http.StatusOK, points)
}

// analysis asks the LLM for study feedback on the consolidated report.
// @Summary      Study analysis
// @Description  Consolidate the filtered exams and ask the configured LLM for strengths, weaknesses and study suggestions.
// @Tags         Reports
// @Produce      json
// @Param        kind   query     string  false  "contest or mock"
// @Param        board  query     string  false  "examining board (case-insensitive)"
// @Param        year   query     int     false  "exam year"
// @Success      200    {object}  AnalysisResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      502    {object}  ErrorResponse  "LLM failed"
// @Failure      503    {object}  ErrorResponse  "analysis disabled"
// @Router       /reports/analysis [post]
func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, rep, err := h.grading.Analyze(r.Context(), f)
	if h.handleGradingError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, AnalysisResponse{Analysis: text, Report: rep})
}
