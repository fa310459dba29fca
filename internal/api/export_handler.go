package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/service"
	"github.com/examtrack/backend/internal/store"
)

const exportVersion = "1.0"

// ── Request / Response types ────────────────────────────────────────────────

type ExportExam struct {
	Title          string         `json:"title"`
	Board          string         `json:"board"`
	Date           string         `json:"date"`
	TotalQuestions int            `json:"total_questions"`
	Policy         string         `json:"scoring_policy"`
	Kind           string         `json:"kind"`
	Candidates     *int           `json:"candidates,omitempty"`
	UserAnswers    string         `json:"user_answers"`
	PreliminaryKey string         `json:"preliminary_key"`
	DefinitiveKey  string         `json:"definitive_key"`
	Subjects       []SubjectInput `json:"subjects"`
}

type ExportData struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Exams      []ExportExam `json:"exams"`
}

func (d *ExportData) Validate() error {
	if d.Version != "" && d.Version != exportVersion {
		return fmt.Errorf("unsupported export version %q", d.Version)
	}
	return nil
}

type ImportResult struct {
	ExamsCreated int                    `json:"exams_created"`
	Errors       []string               `json:"errors,omitempty"`
	Regrade      service.RegradeSummary `json:"regrade"`
}

func toExportExam(e *exam.Exam) ExportExam {
	out := ExportExam{
		Title:          e.Title,
		Board:          e.Board,
		Date:           e.Date.Format(dateLayout),
		TotalQuestions: e.TotalQuestions,
		Policy:         string(e.Policy),
		Kind:           string(e.Kind),
		Candidates:     e.Candidates,
		UserAnswers:    e.UserAnswers,
		PreliminaryKey: e.PreliminaryKey,
		DefinitiveKey:  e.DefinitiveKey,
		Subjects:       make([]SubjectInput, len(e.Subjects)),
	}
	for i, s := range e.Subjects {
		out.Subjects[i] = SubjectInput{Name: s.Name, QuestionCount: s.QuestionCount}
	}
	return out
}

// fromExportExam rebuilds an exam with a fresh ID. Results are not carried;
// the caller regrades.
func fromExportExam(x ExportExam) (*exam.Exam, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(x.Date))
	if err != nil {
		return nil, errors.New("date must be formatted as YYYY-MM-DD")
	}
	policy, err := exam.ParsePolicy(x.Policy)
	if err != nil {
		return nil, err
	}
	kind, err := exam.ParseKind(x.Kind)
	if err != nil {
		return nil, err
	}

	e, err := exam.New(x.Title, x.Board, date, x.TotalQuestions, policy, kind)
	if err != nil {
		return nil, err
	}
	if err := validateSubjects(x.Subjects); err != nil {
		return nil, err
	}
	if err := e.SetSubjects(toSubjects(x.Subjects)); err != nil {
		return nil, err
	}
	e.Candidates = x.Candidates
	e.UserAnswers = strings.TrimSpace(x.UserAnswers)
	e.PreliminaryKey = strings.TrimSpace(x.PreliminaryKey)
	e.DefinitiveKey = strings.TrimSpace(x.DefinitiveKey)
	return e, nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportAll dumps every exam as a JSON backup.
// @Summary      Export backup
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  ExportData
// @Failure      500  {object}  ErrorResponse
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	exams, err := h.store.ListExams(r.Context(), store.ListOptions{})
	if h.handleStoreError(w, err, "exams") {
		return
	}

	data := ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Exams:      make([]ExportExam, len(exams)),
	}
	for i, e := range exams {
		data.Exams[i] = toExportExam(e)
	}

	w.Header().Set("Content-Disposition", "attachment; filename=examtrack-export.json")
	respondJSON(w, http.StatusOK, data)
}

// importAll recreates exams from a backup and grades them.
// @Summary      Import backup
// @Description  Create every exam in the backup under a new ID, then grade the imported exams. Invalid entries are reported and skipped.
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Param        body  body      ExportData  true  "Backup produced by GET /export"
// @Success      201   {object}  ImportResult
// @Failure      400   {object}  ErrorResponse
// @Router       /import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data ExportData
	if !decodeAndValidate(w, r, &data) {
		return
	}

	result := ImportResult{}
	created := make([]*exam.Exam, 0, len(data.Exams))
	for i, x := range data.Exams {
		e, err := fromExportExam(x)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("exams[%d]: %v", i, err))
			continue
		}
		if err := h.store.SaveExam(ctx, e); err != nil {
			h.logger.Error("failed to import exam", "title", x.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("exams[%d]: failed to save", i))
			continue
		}
		created = append(created, e)
	}
	result.ExamsCreated = len(created)
	result.Regrade = h.grading.Regrade(ctx, created)

	h.logger.Info("import finished",
		"created", result.ExamsCreated,
		"rejected", len(result.Errors),
	)
	respondJSON(w, http.StatusCreated, result)
}
