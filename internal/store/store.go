package store

import (
	"context"
	"errors"

	"github.com/examtrack/backend/internal/domain/exam"
)

var (
	ErrNotFound = errors.New("not found")
)

// ListOptions filters ListExams. Zero fields match everything.
type ListOptions struct {
	Kind  exam.Kind
	Board string // case-insensitive
	Year  int
}

// Store persists exams together with their subjects and results.
// Subjects and results are always replaced as a whole, inside one
// transaction, so readers never see a partial set.
type Store interface {
	SaveExam(ctx context.Context, e *exam.Exam) error
	GetExam(ctx context.Context, id string) (*exam.Exam, error)
	ListExams(ctx context.Context, opts ListOptions) ([]*exam.Exam, error)
	// UpdateExam writes the exam's scalar fields and, when replaceSubjects is
	// set, swaps its subject list for e.Subjects. Replacing subjects or
	// changing answers, keys or the question count drops the stored results
	// and percentage.
	UpdateExam(ctx context.Context, e *exam.Exam, replaceSubjects bool) error
	DeleteExam(ctx context.Context, id string) error
	// SaveGrading replaces the exam's results and stores its percentage.
	SaveGrading(ctx context.Context, examID string, results []exam.Result, percentage float64) error
}
