package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/store"
)

const dateLayout = "2006-01-02"

// ── Request / Response types ────────────────────────────────────────────────

type SubjectInput struct {
	Name          string `json:"name" example:"Constitutional Law"`
	QuestionCount int    `json:"question_count" example:"30"`
}

type CreateExamRequest struct {
	Title          string         `json:"title" example:"Court Analyst 2024"`
	Board          string         `json:"board" example:"FCC"`
	Date           string         `json:"date" example:"2024-03-10"`
	TotalQuestions int            `json:"total_questions" example:"120"`
	Policy         string         `json:"scoring_policy" example:"net"`
	Kind           string         `json:"kind,omitempty" example:"contest"`
	Candidates     *int           `json:"candidates,omitempty" example:"15000"`
	Subjects       []SubjectInput `json:"subjects,omitempty"`
	UserAnswers    string         `json:"user_answers,omitempty" example:"1:A,2:C"`
	PreliminaryKey string         `json:"preliminary_key,omitempty" example:"1:A,2:B"`
	DefinitiveKey  string         `json:"definitive_key,omitempty" example:"1:A,2:N"`

	date   time.Time
	policy exam.ScoringPolicy
	kind   exam.Kind
}

func (r *CreateExamRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.TotalQuestions <= 0 {
		return errors.New("total_questions must be positive")
	}
	if r.TotalQuestions > exam.MaxQuestions {
		return fmt.Errorf("total_questions cannot exceed %d", exam.MaxQuestions)
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
	if err != nil {
		return errors.New("date must be formatted as YYYY-MM-DD")
	}
	r.date = d
	if r.policy, err = exam.ParsePolicy(r.Policy); err != nil {
		return errors.New("scoring_policy must be net or gross")
	}
	if r.kind, err = exam.ParseKind(r.Kind); err != nil {
		return errors.New("kind must be contest or mock")
	}
	if r.Candidates != nil && *r.Candidates < 0 {
		return errors.New("candidates cannot be negative")
	}
	return validateSubjects(r.Subjects)
}

// UpdateExamDetailsRequest changes only the fields that are present.
// A present subjects list replaces the stored one wholesale.
type UpdateExamDetailsRequest struct {
	UserAnswers    *string         `json:"user_answers,omitempty" example:"1:A,2:C,3:E"`
	PreliminaryKey *string         `json:"preliminary_key,omitempty" example:"1:A,2:B,3:E"`
	DefinitiveKey  *string         `json:"definitive_key,omitempty" example:"1:A,2:N,3:E"`
	Candidates     *int            `json:"candidates,omitempty" example:"15000"`
	Subjects       *[]SubjectInput `json:"subjects,omitempty"`
}

func (r *UpdateExamDetailsRequest) Validate() error {
	if r.Candidates != nil && *r.Candidates < 0 {
		return errors.New("candidates cannot be negative")
	}
	if r.Subjects != nil {
		return validateSubjects(*r.Subjects)
	}
	return nil
}

func validateSubjects(subjects []SubjectInput) error {
	for i, s := range subjects {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("subjects[%d]: name is required", i)
		}
		if s.QuestionCount < 0 {
			return fmt.Errorf("subjects[%d]: question_count cannot be negative", i)
		}
	}
	return nil
}

func toSubjects(in []SubjectInput) []exam.Subject {
	out := make([]exam.Subject, len(in))
	for i, s := range in {
		out[i] = exam.Subject{Name: s.Name, QuestionCount: s.QuestionCount}
	}
	return out
}

type SubjectResponse struct {
	ID            string `json:"id" example:"5b1e0c9e-6a9b-4a55-8d0b-0f3d8f7c1a21"`
	Name          string `json:"name" example:"Constitutional Law"`
	QuestionCount int    `json:"question_count" example:"30"`
	Start         int    `json:"start" example:"1"`
	End           int    `json:"end" example:"30"`
}

type ResultResponse struct {
	Subject   string `json:"subject" example:"Constitutional Law"`
	Correct   int    `json:"correct" example:"22"`
	Incorrect int    `json:"incorrect" example:"6"`
	Blank     int    `json:"blank" example:"2"`
	Annulled  int    `json:"annulled" example:"1"`
}

type ExamResponse struct {
	ID             string            `json:"id" example:"0e4b2a9c-1f4e-4c1e-9d3b-8f1f0b6f2c11"`
	Title          string            `json:"title" example:"Court Analyst 2024"`
	Board          string            `json:"board" example:"FCC"`
	Date           string            `json:"date" example:"2024-03-10"`
	TotalQuestions int               `json:"total_questions" example:"120"`
	Policy         string            `json:"scoring_policy" example:"net"`
	Kind           string            `json:"kind" example:"contest"`
	Candidates     *int              `json:"candidates,omitempty" example:"15000"`
	UserAnswers    string            `json:"user_answers"`
	PreliminaryKey string            `json:"preliminary_key"`
	DefinitiveKey  string            `json:"definitive_key"`
	Percentage     *float64          `json:"percentage,omitempty" example:"0.63"`
	Subjects       []SubjectResponse `json:"subjects"`
	Results        []ResultResponse  `json:"results"`
	CreatedAt      time.Time         `json:"created_at"`
}

func toExamResponse(e *exam.Exam) ExamResponse {
	resp := ExamResponse{
		ID:             e.ID,
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
		Percentage:     e.Percentage,
		Subjects:       make([]SubjectResponse, len(e.Subjects)),
		Results:        toResultResponses(e.Results),
		CreatedAt:      e.CreatedAt,
	}
	for i, s := range e.Subjects {
		resp.Subjects[i] = SubjectResponse{
			ID:            s.ID,
			Name:          s.Name,
			QuestionCount: s.QuestionCount,
			Start:         s.Start,
			End:           s.End,
		}
	}
	return resp
}

func toResultResponses(results []exam.Result) []ResultResponse {
	out := make([]ResultResponse, len(results))
	for i, r := range results {
		out[i] = ResultResponse{
			Subject:   r.Subject,
			Correct:   r.Correct,
			Incorrect: r.Incorrect,
			Blank:     r.Blank,
			Annulled:  r.Annulled,
		}
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createExam registers a new exam.
// @Summary      Create an exam
// @Description  Register a contest or mock exam. Subjects, answers and keys are optional and can be set later.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        body  body      CreateExamRequest  true  "Exam to create"
// @Success      201   {object}  ExamResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /exams [post]
func (h *Handler) createExam(w http.ResponseWriter, r *http.Request) {
	var req CreateExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := exam.New(req.Title, req.Board, req.date, req.TotalQuestions, req.policy, req.kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e.Candidates = req.Candidates
	e.UserAnswers = strings.TrimSpace(req.UserAnswers)
	e.PreliminaryKey = strings.TrimSpace(req.PreliminaryKey)
	e.DefinitiveKey = strings.TrimSpace(req.DefinitiveKey)
	if err := e.SetSubjects(toSubjects(req.Subjects)); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveExam(r.Context(), e); err != nil {
		h.logger.Error("failed to save exam", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save exam")
		return
	}

	respondJSON(w, http.StatusCreated, toExamResponse(e))
}

// listExams lists exams, newest first.
// @Summary      List exams
// @Description  List exams with their subjects and results, newest date first.
// @Tags         Exams
// @Produce      json
// @Param        kind   query     string  false  "contest or mock"
// @Param        board  query     string  false  "examining board (case-insensitive)"
// @Param        year   query     int     false  "exam year"
// @Success      200    {array}   ExamResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /exams [get]
func (h *Handler) listExams(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exams, err := h.store.ListExams(r.Context(), store.ListOptions{Kind: f.Kind, Board: f.Board, Year: f.Year})
	if h.handleStoreError(w, err, "exams") {
		return
	}

	resp := make([]ExamResponse, len(exams))
	for i, e := range exams {
		resp[i] = toExamResponse(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// getExam returns one exam.
// @Summary      Get an exam
// @Tags         Exams
// @Produce      json
// @Param        examID  path      string  true  "Exam ID"
// @Success      200     {object}  ExamResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /exams/{examID} [get]
func (h *Handler) getExam(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetExam(r.Context(), chi.URLParam(r, "examID"))
	if h.handleStoreError(w, err, "exam") {
		return
	}
	respondJSON(w, http.StatusOK, toExamResponse(e))
}

// updateExamDetails sets answers, keys, candidates and subjects.
// @Summary      Update exam details
// @Description  Update any of user answers, preliminary key, definitive key, candidates and subjects. Subjects are replaced wholesale and their question ranges recomputed. Replacing subjects or changing answers or keys clears the stored results until the exam is graded again.
// @Tags         Exams
// @Accept       json
// @Produce      json
// @Param        examID  path      string                    true  "Exam ID"
// @Param        body    body      UpdateExamDetailsRequest  true  "Fields to change"
// @Success      200     {object}  ExamResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /exams/{examID}/details [put]
func (h *Handler) updateExamDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req UpdateExamDetailsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	e, err := h.store.GetExam(ctx, chi.URLParam(r, "examID"))
	if h.handleStoreError(w, err, "exam") {
		return
	}

	if req.UserAnswers != nil {
		e.UserAnswers = strings.TrimSpace(*req.UserAnswers)
	}
	if req.PreliminaryKey != nil {
		e.PreliminaryKey = strings.TrimSpace(*req.PreliminaryKey)
	}
	if req.DefinitiveKey != nil {
		e.DefinitiveKey = strings.TrimSpace(*req.DefinitiveKey)
	}
	if req.Candidates != nil {
		e.Candidates = req.Candidates
	}
	replace := req.Subjects != nil
	if replace {
		if err := e.SetSubjects(toSubjects(*req.Subjects)); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if h.handleStoreError(w, h.store.UpdateExam(ctx, e, replace), "exam") {
		return
	}
	respondJSON(w, http.StatusOK, toExamResponse(e))
}

// deleteExam removes an exam with its subjects and results.
// @Summary      Delete an exam
// @Tags         Exams
// @Param        examID  path  string  true  "Exam ID"
// @Success      204
// @Failure      404     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /exams/{examID} [delete]
func (h *Handler) deleteExam(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.store.DeleteExam(r.Context(), chi.URLParam(r, "examID")), "exam") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
