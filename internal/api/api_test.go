package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/examtrack/backend/internal/api"
	"github.com/examtrack/backend/internal/grading"
	"github.com/examtrack/backend/internal/service"
	"github.com/examtrack/backend/internal/store"
)

type stubAdvisor struct{}

func (stubAdvisor) Analyze(_ context.Context, r grading.ConsolidatedReport) (string, error) {
	return "Keep going.", nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := store.Open(context.Background(), store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	s := store.NewSQLStore(db, store.DriverSQLite)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gs := service.NewGradingService(s, stubAdvisor{}, logger, 2)
	h := api.NewHandler(s, gs, logger)
	srv := httptest.NewServer(api.NewRouter(h, logger, api.RouterOptions{}))
	t.Cleanup(func() {
		srv.Close()
		s.Close()
	})
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, b)
	}
}

func createExam(t *testing.T, srv *httptest.Server, board, date string) api.ExamResponse {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/exams", map[string]any{
		"title":           "Analyst " + board,
		"board":           board,
		"date":            date,
		"total_questions": 10,
		"scoring_policy":  "net",
		"subjects": []map[string]any{
			{"name": "Portuguese", "question_count": 4},
			{"name": "Law", "question_count": 6},
		},
	})
	expectStatus(t, resp, http.StatusCreated)
	return decode[api.ExamResponse](t, resp)
}

func fillAnswers(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()
	resp := do(t, srv, http.MethodPut, "/exams/"+id+"/details", map[string]any{
		"user_answers":    "1:A,2:B,3:C,4:A,5:A,6:B,7:C,8:D",
		"preliminary_key": "1:A,2:B,3:C,4:D,5:A,6:B,7:C,8:D,9:A,10:B",
		"definitive_key":  "1:A,2:B,3:C,4:N,5:A,6:B,7:C,8:D,9:A,10:B",
	})
	expectStatus(t, resp, http.StatusOK)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	resp := do(t, srv, http.MethodGet, "/health", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestCreateExam_Validation(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"date": "2024-01-01", "total_questions": 10, "scoring_policy": "net"}},
		{"bad date", map[string]any{"title": "X", "date": "01/02/2024", "total_questions": 10, "scoring_policy": "net"}},
		{"bad policy", map[string]any{"title": "X", "date": "2024-01-01", "total_questions": 10, "scoring_policy": "half"}},
		{"zero questions", map[string]any{"title": "X", "date": "2024-01-01", "total_questions": 0, "scoring_policy": "net"}},
		{"too many questions", map[string]any{"title": "X", "date": "2024-01-01", "total_questions": 2000000000, "scoring_policy": "net"}},
		{"duplicate subject", map[string]any{
			"title": "X", "date": "2024-01-01", "total_questions": 10, "scoring_policy": "net",
			"subjects": []map[string]any{{"name": "Law", "question_count": 5}, {"name": "Law", "question_count": 5}},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, srv, http.MethodPost, "/exams", tc.body)
			expectStatus(t, resp, http.StatusBadRequest)
		})
	}
}

func TestExamLifecycle(t *testing.T) {
	srv := newServer(t)
	created := createExam(t, srv, "FCC", "2024-03-10")

	if len(created.Subjects) != 2 || created.Subjects[1].Start != 5 || created.Subjects[1].End != 10 {
		t.Fatalf("unexpected subjects %+v", created.Subjects)
	}
	if created.Kind != "contest" {
		t.Errorf("expected default kind contest, got %q", created.Kind)
	}

	// Grading before answers exist reports what is missing.
	resp := do(t, srv, http.MethodPost, "/exams/"+created.ID+"/grade", nil)
	expectStatus(t, resp, http.StatusUnprocessableEntity)
	errBody := decode[api.ErrorResponse](t, resp)
	if len(errBody.Reasons) != 2 {
		t.Errorf("expected 2 reasons, got %v", errBody.Reasons)
	}

	fillAnswers(t, srv, created.ID)

	resp = do(t, srv, http.MethodPost, "/exams/"+created.ID+"/grade", nil)
	expectStatus(t, resp, http.StatusOK)
	graded := decode[api.GradeExamResponse](t, resp)
	// Q4 is annulled, so 8 correct (one annulled), 0 incorrect, 2 blank.
	if graded.Summary.Correct != 8 || graded.Summary.Annulled != 1 || graded.Summary.Score != 8 {
		t.Errorf("unexpected summary %+v", graded.Summary)
	}

	resp = do(t, srv, http.MethodGet, "/exams/"+created.ID, nil)
	expectStatus(t, resp, http.StatusOK)
	got := decode[api.ExamResponse](t, resp)
	if got.Percentage == nil || *got.Percentage != 0.8 {
		t.Errorf("expected stored percentage 0.8, got %v", got.Percentage)
	}
	if len(got.Results) != 2 || got.Results[0].Annulled != 1 {
		t.Errorf("unexpected results %+v", got.Results)
	}

	// Replacing subjects recomputes ranges.
	resp = do(t, srv, http.MethodPut, "/exams/"+created.ID+"/details", map[string]any{
		"subjects": []map[string]any{{"name": "General", "question_count": 10}},
	})
	expectStatus(t, resp, http.StatusOK)
	updated := decode[api.ExamResponse](t, resp)
	if len(updated.Subjects) != 1 || updated.Subjects[0].End != 10 {
		t.Errorf("expected subjects replaced, got %+v", updated.Subjects)
	}
	if updated.UserAnswers == "" {
		t.Error("expected answers to survive a subjects-only update")
	}
	if updated.Percentage != nil || len(updated.Results) != 0 {
		t.Errorf("expected stale grading dropped, got %v %+v", updated.Percentage, updated.Results)
	}

	resp = do(t, srv, http.MethodGet, "/reports/consolidated", nil)
	expectStatus(t, resp, http.StatusOK)
	if rep := decode[grading.ConsolidatedReport](t, resp); rep.Exams != 0 || len(rep.Subjects) != 0 {
		t.Errorf("expected no graded exams after subject change, got %+v", rep)
	}

	resp = do(t, srv, http.MethodDelete, "/exams/"+created.ID, nil)
	expectStatus(t, resp, http.StatusNoContent)

	resp = do(t, srv, http.MethodGet, "/exams/"+created.ID, nil)
	expectStatus(t, resp, http.StatusNotFound)
}

func TestListExams_Filters(t *testing.T) {
	srv := newServer(t)
	createExam(t, srv, "FCC", "2023-05-01")
	createExam(t, srv, "FGV", "2024-05-01")

	resp := do(t, srv, http.MethodGet, "/exams", nil)
	expectStatus(t, resp, http.StatusOK)
	if all := decode[[]api.ExamResponse](t, resp); len(all) != 2 || all[0].Board != "FGV" {
		t.Errorf("expected 2 exams newest first, got %+v", all)
	}

	resp = do(t, srv, http.MethodGet, "/exams?board=fcc", nil)
	expectStatus(t, resp, http.StatusOK)
	if fcc := decode[[]api.ExamResponse](t, resp); len(fcc) != 1 || fcc[0].Board != "FCC" {
		t.Errorf("expected only the FCC exam, got %+v", fcc)
	}

	resp = do(t, srv, http.MethodGet, "/exams?year=abc", nil)
	expectStatus(t, resp, http.StatusBadRequest)
}

func TestSimulate(t *testing.T) {
	srv := newServer(t)
	e := createExam(t, srv, "FCC", "2024-03-10")
	fillAnswers(t, srv, e.ID)

	resp := do(t, srv, http.MethodPost, "/exams/"+e.ID+"/simulate", map[string]any{"questions": []int{9, 10, 11}})
	expectStatus(t, resp, http.StatusOK)
	sim := decode[grading.Simulation](t, resp)
	if sim.Difference != 2 {
		t.Errorf("expected difference 2, got %d", sim.Difference)
	}
	if len(sim.Ignored) != 1 || sim.Ignored[0] != 11 {
		t.Errorf("expected question 11 reported as ignored, got %v", sim.Ignored)
	}

	resp = do(t, srv, http.MethodPost, "/exams/"+e.ID+"/simulate", map[string]any{"questions": []int{}})
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, srv, http.MethodPost, "/exams/missing/simulate", map[string]any{"questions": []int{1}})
	expectStatus(t, resp, http.StatusNotFound)
}

func TestReports(t *testing.T) {
	srv := newServer(t)
	a := createExam(t, srv, "FCC", "2023-03-10")
	b := createExam(t, srv, "FGV", "2024-03-10")
	createExam(t, srv, "FGV", "2022-03-10") // never answered
	fillAnswers(t, srv, a.ID)
	fillAnswers(t, srv, b.ID)

	resp := do(t, srv, http.MethodPost, "/exams/regrade", nil)
	expectStatus(t, resp, http.StatusOK)
	summary := decode[service.RegradeSummary](t, resp)
	if summary.Graded != 2 || summary.Skipped != 1 {
		t.Errorf("unexpected regrade summary %+v", summary)
	}

	resp = do(t, srv, http.MethodGet, "/reports/consolidated", nil)
	expectStatus(t, resp, http.StatusOK)
	rep := decode[grading.ConsolidatedReport](t, resp)
	if rep.Exams != 2 || rep.Total.Correct != 16 || rep.Total.Capacity != 20 {
		t.Errorf("unexpected consolidated report %+v", rep)
	}

	resp = do(t, srv, http.MethodGet, "/reports/consolidated?board=FGV&kind=contest", nil)
	expectStatus(t, resp, http.StatusOK)
	if fgv := decode[grading.ConsolidatedReport](t, resp); fgv.Exams != 1 {
		t.Errorf("expected 1 FGV exam, got %d", fgv.Exams)
	}

	resp = do(t, srv, http.MethodGet, "/reports/timeline", nil)
	expectStatus(t, resp, http.StatusOK)
	points := decode[[]grading.TimelinePoint](t, resp)
	if len(points) != 2 || points[0].ExamID != a.ID {
		t.Errorf("unexpected timeline %+v", points)
	}

	resp = do(t, srv, http.MethodGet, "/reports/consolidated.xlsx", nil)
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type %q", ct)
	}
	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	f.Close()

	resp = do(t, srv, http.MethodPost, "/reports/analysis", nil)
	expectStatus(t, resp, http.StatusOK)
	if an := decode[api.AnalysisResponse](t, resp); an.Analysis != "Keep going." {
		t.Errorf("unexpected analysis %+v", an)
	}
}

func TestExportImport(t *testing.T) {
	src := newServer(t)
	e := createExam(t, src, "FCC", "2024-03-10")
	fillAnswers(t, src, e.ID)

	resp := do(t, src, http.MethodGet, "/export", nil)
	expectStatus(t, resp, http.StatusOK)
	backup := decode[api.ExportData](t, resp)
	if len(backup.Exams) != 1 || len(backup.Exams[0].Subjects) != 2 {
		t.Fatalf("unexpected backup %+v", backup)
	}

	backup.Exams[0].UserAnswers = "  " + backup.Exams[0].UserAnswers + "\n"
	backup.Exams[0].DefinitiveKey = "\t" + backup.Exams[0].DefinitiveKey + " "
	backup.Exams = append(backup.Exams, api.ExportExam{Title: "broken", Date: "yesterday"})

	dst := newServer(t)
	resp = do(t, dst, http.MethodPost, "/import", backup)
	expectStatus(t, resp, http.StatusCreated)
	result := decode[api.ImportResult](t, resp)
	if result.ExamsCreated != 1 || len(result.Errors) != 1 {
		t.Errorf("unexpected import result %+v", result)
	}
	if result.Regrade.Graded != 1 {
		t.Errorf("expected imported exam to be graded, got %+v", result.Regrade)
	}

	resp = do(t, dst, http.MethodGet, "/exams", nil)
	expectStatus(t, resp, http.StatusOK)
	exams := decode[[]api.ExamResponse](t, resp)
	if len(exams) != 1 || exams[0].ID == e.ID || exams[0].Percentage == nil {
		t.Errorf("expected one freshly graded copy, got %+v", exams)
	}
	wantAnswers, wantKey := strings.TrimSpace(backup.Exams[0].UserAnswers), strings.TrimSpace(backup.Exams[0].DefinitiveKey)
	if len(exams) == 1 && (exams[0].UserAnswers != wantAnswers || exams[0].DefinitiveKey != wantKey) {
		t.Errorf("expected imported answers trimmed, got %q and %q", exams[0].UserAnswers, exams[0].DefinitiveKey)
	}
}
