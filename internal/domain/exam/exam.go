package exam

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/examtrack/backend/internal/id"
)

type ScoringPolicy string

const (
	// PolicyNet subtracts one correct answer for every incorrect one.
	PolicyNet ScoringPolicy = "net"
	// PolicyGross counts correct answers only.
	PolicyGross ScoringPolicy = "gross"
)

// Kind is the category tag used to separate real contests from mock exams.
type Kind string

const (
	KindContest Kind = "contest"
	KindMock    Kind = "mock"
)

// MaxQuestions bounds TotalQuestions; grading walks every question number.
const MaxQuestions = 10000

var (
	ErrInvalidPolicy    = errors.New("invalid scoring policy")
	ErrInvalidKind      = errors.New("invalid exam kind")
	ErrTooManyQuestions = fmt.Errorf("total questions cannot exceed %d", MaxQuestions)
)

// ParsePolicy accepts "net" or "gross" (case-insensitive).
func ParsePolicy(s string) (ScoringPolicy, error) {
	switch p := ScoringPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyNet, PolicyGross:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// ParseKind accepts "contest" or "mock"; an empty string means contest.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindContest, nil
	case KindContest, KindMock:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Exam is one registered contest or mock-exam attempt.
type Exam struct {
	ID             string
	Title          string
	Board          string
	Date           time.Time
	TotalQuestions int
	Policy         ScoringPolicy
	Kind           Kind
	Candidates     *int // optional number of registered candidates

	UserAnswers    string
	PreliminaryKey string
	DefinitiveKey  string

	// Percentage is set by the last successful grading run.
	Percentage *float64

	Subjects []Subject
	Results  []Result

	CreatedAt time.Time
}

// New creates an Exam with a generated ID and no subjects or answers.
func New(title, board string, date time.Time, totalQuestions int, policy ScoringPolicy, kind Kind) (*Exam, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}
	if totalQuestions <= 0 {
		return nil, errors.New("total questions must be positive")
	}
	if totalQuestions > MaxQuestions {
		return nil, ErrTooManyQuestions
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}
	if kind == "" {
		kind = KindContest
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	return &Exam{
		ID:             id.GenerateID(),
		Title:          strings.TrimSpace(title),
		Board:          strings.TrimSpace(board),
		Date:           date,
		TotalQuestions: totalQuestions,
		Policy:         policy,
		Kind:           kind,
		Subjects:       []Subject{},
		Results:        []Result{},
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// SetSubjects replaces the subject list wholesale. Every subject gets a fresh
// ID and the question ranges are recomputed from the submitted order.
func (e *Exam) SetSubjects(subjects []Subject) error {
	seen := make(map[string]struct{}, len(subjects))
	fresh := make([]Subject, len(subjects))
	for i, s := range subjects {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("subject %d: name is required", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("subject %q is listed twice", name)
		}
		seen[name] = struct{}{}
		fresh[i] = Subject{
			ID:            id.GenerateID(),
			Name:          name,
			QuestionCount: s.QuestionCount,
		}
	}
	e.Subjects = AssignRanges(fresh)
	return nil
}

// Graded reports whether a grading run has stored results for this exam.
func (e *Exam) Graded() bool {
	return e.Percentage != nil && len(e.Results) > 0
}

// SubjectCapacity returns the question count of the subject with the given
// name, or 0 when the exam has no such subject.
func (e *Exam) SubjectCapacity(name string) int {
	for _, s := range e.Subjects {
		if s.Name == name {
			return s.QuestionCount
		}
	}
	return 0
}

// Result holds the tallies of one subject after grading.
// Annulled questions are also counted in Correct.
type Result struct {
	Subject   string
	Correct   int
	Incorrect int
	Blank     int
	Annulled  int
}

// Questions returns how many questions produced this result.
func (r Result) Questions() int {
	return r.Correct + r.Incorrect + r.Blank
}
