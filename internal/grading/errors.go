package grading

import (
	"errors"
	"strings"
)

// ErrInputIncomplete matches any *IncompleteError via errors.Is.
var ErrInputIncomplete = errors.New("grading input incomplete")

// Reasons reported by IncompleteError.
const (
	ReasonNoUserAnswers = "user answers are missing"
	ReasonNoOfficialKey = "no official answer key (preliminary or definitive) is set"
	ReasonNoSubjects    = "no subjects are defined"
	ReasonNoQuestions   = "total question count must be positive"
)

// IncompleteError lists every precondition a grading request failed.
// It is a user-correctable condition, not a defect.
type IncompleteError struct {
	Reasons []string
}

func (e *IncompleteError) Error() string {
	return ErrInputIncomplete.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrInputIncomplete
}
