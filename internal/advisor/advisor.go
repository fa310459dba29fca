package advisor

import (
	"context"
	"fmt"

	"github.com/examtrack/backend/internal/grading"
)

// Advisor turns a consolidated report into written study feedback.
// Implementations may call an LLM or return canned text (for tests).
type Advisor interface {
	Analyze(ctx context.Context, report grading.ConsolidatedReport) (string, error)
}

// AnalysisError is returned when no usable feedback could be produced so the
// caller can tell "the model answered badly" from "the model was unreachable."
type AnalysisError struct {
	Reason  string
	Wrapped error
}

func (e *AnalysisError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("analysis failed: %s", e.Reason)
}

func (e *AnalysisError) Unwrap() error {
	return e.Wrapped
}
