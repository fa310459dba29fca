package grading

import (
	"github.com/examtrack/backend/internal/domain/answerset"
	"github.com/examtrack/backend/internal/domain/exam"
)

type Outcome int

const (
	// Unassigned questions have no owning subject and are left out of every tally.
	Unassigned Outcome = iota
	Annulled
	Blank
	Correct
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Unassigned:
		return "unassigned"
	case Annulled:
		return "annulled"
	case Blank:
		return "blank"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "unknown"
}

// Question carries everything known about one question number. Empty strings
// mean "no answer" for the corresponding source.
type Question struct {
	Number      int
	User        string
	Definitive  string
	Preliminary string
	Assigned    bool // some subject range covers Number
}

// IsAnnulled reports whether the board voided the question: the preliminary
// and definitive keys disagree, or the definitive key carries the annulment
// marker.
func (q Question) IsAnnulled() bool {
	if q.Definitive == answerset.AnnulledMarker {
		return true
	}
	return q.Preliminary != "" && q.Definitive != "" && q.Preliminary != q.Definitive
}

// EffectiveKey is the definitive answer, falling back to the preliminary one.
func (q Question) EffectiveKey() string {
	if q.Definitive != "" {
		return q.Definitive
	}
	return q.Preliminary
}

// Classify decides the outcome of one question. The order of the checks is
// significant: annulment wins over a blank answer, and a blank answer is
// never compared against the key.
func Classify(q Question) Outcome {
	switch {
	case !q.Assigned:
		return Unassigned
	case q.IsAnnulled():
		return Annulled
	case q.User == "":
		return Blank
	case q.User == q.EffectiveKey():
		return Correct
	default:
		return Incorrect
	}
}

// Apply adds one outcome to a subject result. An annulled question is scored
// as a free correct answer, so it bumps both Annulled and Correct.
func Apply(r *exam.Result, o Outcome) {
	switch o {
	case Annulled:
		r.Annulled++
		r.Correct++
	case Blank:
		r.Blank++
	case Correct:
		r.Correct++
	case Incorrect:
		r.Incorrect++
	}
}
