// internal/service/grading.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/examtrack/backend/internal/advisor"
	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/grading"
	"github.com/examtrack/backend/internal/store"
	"github.com/examtrack/backend/internal/worker"
)

// ErrAdvisorDisabled is returned by Analyze when no advisor is configured.
var ErrAdvisorDisabled = errors.New("study analysis is not configured")

// GradingService runs the grading engine against stored exams and persists
// the outcome. The engine itself stays pure; this is where I/O and logging
// happen.
type GradingService struct {
	store   store.Store
	advisor advisor.Advisor
	logger  *slog.Logger
	workers int
}

// NewGradingService creates a GradingService. adv may be nil, in which case
// Analyze returns ErrAdvisorDisabled.
func NewGradingService(s store.Store, adv advisor.Advisor, logger *slog.Logger, workers int) *GradingService {
	if workers < 1 {
		workers = 1
	}
	return &GradingService{
		store:   s,
		advisor: adv,
		logger:  logger,
		workers: workers,
	}
}

// GradeResult is the outcome of grading one exam.
type GradeResult struct {
	Exam   *exam.Exam
	Report grading.Report
}

// GradeExam grades the stored exam, replaces its results, and stores the
// percentage. Nothing is written when the input is incomplete.
func (gs *GradingService) GradeExam(ctx context.Context, examID string) (GradeResult, error) {
	e, err := gs.store.GetExam(ctx, examID)
	if err != nil {
		return GradeResult{}, err
	}
	report, err := gs.grade(ctx, e)
	if err != nil {
		return GradeResult{}, err
	}
	return GradeResult{Exam: e, Report: report}, nil
}

// grade runs the engine on e, persists the result, and updates e in place.
func (gs *GradingService) grade(ctx context.Context, e *exam.Exam) (grading.Report, error) {
	report, err := grading.Grade(grading.InputFrom(e))
	if err != nil {
		return grading.Report{}, err
	}

	if len(report.Orphans) > 0 {
		gs.logger.Warn("questions outside every subject range",
			"exam_id", e.ID,
			"count", report.OrphanCount(),
			"ranges", report.Orphans,
		)
	}
	if len(report.Rejected) > 0 {
		gs.logger.Warn("skipped malformed answer entries",
			"exam_id", e.ID,
			"entries", report.Rejected,
		)
	}

	pct := report.Summary.Percentage
	if err := gs.store.SaveGrading(ctx, e.ID, report.Results, pct); err != nil {
		return grading.Report{}, fmt.Errorf("save grading for exam %s: %w", e.ID, err)
	}
	e.Results = report.Results
	e.Percentage = &pct

	gs.logger.Info("exam graded",
		"exam_id", e.ID,
		"score", report.Summary.Score,
		"percentage", pct,
	)
	return report, nil
}

// Simulate runs an annulment what-if on the stored exam. Nothing is persisted.
func (gs *GradingService) Simulate(ctx context.Context, examID string, questions []int) (grading.Simulation, error) {
	e, err := gs.store.GetExam(ctx, examID)
	if err != nil {
		return grading.Simulation{}, err
	}
	return grading.SimulateAnnulments(grading.InputFrom(e), questions)
}

// RegradeSummary reports how a bulk regrade went.
type RegradeSummary struct {
	Graded   int               `json:"graded"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Failures map[string]string `json:"failures,omitempty"` // exam ID → error
}

// RegradeAll regrades every stored exam on a bounded worker pool. Exams with
// incomplete input are counted as skipped.
func (gs *GradingService) RegradeAll(ctx context.Context) (RegradeSummary, error) {
	exams, err := gs.store.ListExams(ctx, store.ListOptions{})
	if err != nil {
		return RegradeSummary{}, err
	}
	return gs.Regrade(ctx, exams), nil
}

// Regrade grades the given exams on the worker pool.
func (gs *GradingService) Regrade(ctx context.Context, exams []*exam.Exam) RegradeSummary {
	summary := RegradeSummary{}
	if len(exams) == 0 {
		return summary
	}

	pool := worker.NewPool[error](gs.workers, len(exams))
	go func() {
		defer pool.Close()
		for _, e := range exams {
			e := e
			pool.Submit(e.ID, func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				_, err := gs.grade(ctx, e)
				return err
			})
		}
	}()

	for r := range pool.Results() {
		switch {
		case r.Output == nil:
			summary.Graded++
		case errors.Is(r.Output, grading.ErrInputIncomplete):
			summary.Skipped++
		default:
			summary.Failed++
			if summary.Failures == nil {
				summary.Failures = make(map[string]string)
			}
			summary.Failures[r.JobID] = r.Output.Error()
			gs.logger.Error("regrade failed", "exam_id", r.JobID, "error", r.Output)
		}
	}

	gs.logger.Info("regrade finished",
		"graded", summary.Graded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary
}

// Consolidate aggregates every graded exam that passes the filter.
func (gs *GradingService) Consolidate(ctx context.Context, f grading.Filter) (grading.ConsolidatedReport, error) {
	exams, err := gs.store.ListExams(ctx, listOptions(f))
	if err != nil {
		return grading.ConsolidatedReport{}, err
	}
	return grading.Consolidate(exams, f), nil
}

// Timeline returns the graded exams that pass the filter, oldest first.
func (gs *GradingService) Timeline(ctx context.Context, f grading.Filter) ([]grading.TimelinePoint, error) {
	exams, err := gs.store.ListExams(ctx, listOptions(f))
	if err != nil {
		return nil, err
	}
	return grading.Timeline(exams, f), nil
}

// Analyze consolidates the filtered exams and asks the advisor for feedback.
func (gs *GradingService) Analyze(ctx context.Context, f grading.Filter) (string, grading.ConsolidatedReport, error) {
	if gs.advisor == nil {
		return "", grading.ConsolidatedReport{}, ErrAdvisorDisabled
	}
	report, err := gs.Consolidate(ctx, f)
	if err != nil {
		return "", grading.ConsolidatedReport{}, err
	}

	text, err := gs.advisor.Analyze(ctx, report)
	if err != nil {
		gs.logger.Error("study analysis failed", "error", err)
		return "", report, err
	}
	return text, report, nil
}

func listOptions(f grading.Filter) store.ListOptions {
	return store.ListOptions{Kind: f.Kind, Board: f.Board, Year: f.Year}
}
