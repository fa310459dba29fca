package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examtrack/backend/internal/grading"
)

// ── Request / Response types ────────────────────────────────────────────────

type GradeExamResponse struct {
	ExamID      string                  `json:"exam_id" example:"0e4b2a9c-1f4e-4c1e-9d3b-8f1f0b6f2c11"`
	Results     []ResultResponse        `json:"results"`
	Summary     grading.Summary         `json:"summary"`
	Orphans     []grading.QuestionRange `json:"orphan_questions,omitempty"`
	OrphanCount int                     `json:"orphan_count" example:"2"`
	Rejected    []string                `json:"rejected_entries,omitempty" example:"7:AB"`
}

type SimulateRequest struct {
	Questions []int `json:"questions" example:"12,47"`
}

func (r *SimulateRequest) Validate() error {
	if len(r.Questions) == 0 {
		return errors.New("questions must list at least one question number")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// gradeExam grades an exam and stores the results.
// @Summary      Grade an exam
// @Description  Classify every question against the official key, store per-subject results and the final percentage. Previous results are replaced.
// @Tags         Grading
// @Produce      json
// @Param        examID  path      string  true  "Exam ID"
// @Success      200     {object}  GradeExamResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse  "answers, key or subjects missing"
// @Failure      500     {object}  ErrorResponse
// @Router       /exams/{examID}/grade [post]
func (h *Handler) gradeExam(w http.ResponseWriter, r *http.Request) {
	res, err := h.grading.GradeExam(r.Context(), chi.URLParam(r, "examID"))
	if h.handleGradingError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, GradeExamResponse{
		ExamID:      res.Exam.ID,
		Results:     toResultResponses(res.Report.Results),
		Summary:     res.Report.Summary,
		Orphans:     res.Report.Orphans,
		OrphanCount: res.Report.OrphanCount(),
		Rejected:    res.Report.Rejected,
	})
}

// simulateExam previews the score if extra questions were annulled.
// @Summary      Simulate annulments
// @Description  Grade the exam as stored and again with the given questions annulled. Nothing is persisted.
// @Tags         Grading
// @Accept       json
// @Produce      json
// @Param        examID  path      string           true  "Exam ID"
// @Param        body    body      SimulateRequest  true  "Questions to annul"
// @Success      200     {object}  grading.Simulation
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /exams/{examID}/simulate [post]
func (h *Handler) simulateExam(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sim, err := h.grading.Simulate(r.Context(), chi.URLParam(r, "examID"), req.Questions)
	if h.handleGradingError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, sim)
}

// regradeAll regrades every stored exam.
// @Summary      Regrade all exams
// @Description  Grade every exam again on a bounded worker pool. Exams with missing answers, key or subjects are skipped.
// @Tags         Grading
// @Produce      json
// @Success      200  {object}  service.RegradeSummary
// @Failure      500  {object}  ErrorResponse
// @Router       /exams/regrade [post]
func (h *Handler) regradeAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.grading.RegradeAll(r.Context())
	if h.handleStoreError(w, err, "exams") {
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
