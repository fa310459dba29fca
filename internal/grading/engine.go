// Package grading turns an exam's answer strings and subject layout into
// per-subject tallies, final scores and cross-exam reports.
//
// Every function here is pure: callers load data, call in, and persist what
// comes back.
package grading

import (
	"github.com/examtrack/backend/internal/domain/answerset"
	"github.com/examtrack/backend/internal/domain/exam"
)

// Input is the snapshot of one exam needed to grade it.
type Input struct {
	TotalQuestions int
	Policy         exam.ScoringPolicy
	UserAnswers    string
	PreliminaryKey string
	DefinitiveKey  string
	Subjects       []exam.Subject // ranges already assigned
}

// InputFrom builds an Input from a stored exam.
func InputFrom(e *exam.Exam) Input {
	return Input{
		TotalQuestions: e.TotalQuestions,
		Policy:         e.Policy,
		UserAnswers:    e.UserAnswers,
		PreliminaryKey: e.PreliminaryKey,
		DefinitiveKey:  e.DefinitiveKey,
		Subjects:       e.Subjects,
	}
}

// Report is the outcome of one grading run.
type Report struct {
	Results []exam.Result // one per subject, in subject order
	Summary Summary

	// Orphans lists the runs of question numbers that no subject covers.
	Orphans []QuestionRange
	// Rejected holds malformed answer entries skipped while parsing.
	Rejected []string
}

// QuestionRange is an inclusive run of question numbers.
type QuestionRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Len returns how many questions the range spans.
func (r QuestionRange) Len() int {
	return r.To - r.From + 1
}

// OrphanCount returns how many questions no subject covers.
func (r Report) OrphanCount() int {
	n := 0
	for _, o := range r.Orphans {
		n += o.Len()
	}
	return n
}

// addToRuns appends n to runs, extending the last run when n follows it.
func addToRuns(runs []QuestionRange, n int) []QuestionRange {
	if last := len(runs) - 1; last >= 0 && runs[last].To == n-1 {
		runs[last].To = n
		return runs
	}
	return append(runs, QuestionRange{From: n, To: n})
}

type parsedInput struct {
	user, prelim, defin answerset.Set
	rejected            []string
}

func parse(in Input) (parsedInput, error) {
	user, r1 := answerset.ParseWithRejects(in.UserAnswers)
	prelim, r2 := answerset.ParseWithRejects(in.PreliminaryKey)
	defin, r3 := answerset.ParseWithRejects(in.DefinitiveKey)

	var reasons []string
	if in.TotalQuestions <= 0 {
		reasons = append(reasons, ReasonNoQuestions)
	}
	if user.Empty() {
		reasons = append(reasons, ReasonNoUserAnswers)
	}
	if prelim.Empty() && defin.Empty() {
		reasons = append(reasons, ReasonNoOfficialKey)
	}
	if len(in.Subjects) == 0 {
		reasons = append(reasons, ReasonNoSubjects)
	}
	if len(reasons) > 0 {
		return parsedInput{}, &IncompleteError{Reasons: reasons}
	}

	rejected := append(append(r1, r2...), r3...)
	return parsedInput{user: user, prelim: prelim, defin: defin, rejected: rejected}, nil
}

// Grade classifies every question from 1 to TotalQuestions and accumulates
// the outcomes into the owning subject's result. It returns an
// *IncompleteError when the input cannot be graded.
func Grade(in Input) (Report, error) {
	return grade(in, nil)
}

// grade runs the engine; questions in forced are treated as annulled.
func grade(in Input, forced map[int]bool) (Report, error) {
	p, err := parse(in)
	if err != nil {
		return Report{}, err
	}

	results := make([]exam.Result, len(in.Subjects))
	for i, s := range in.Subjects {
		results[i].Subject = s.Name
	}

	var orphans []QuestionRange
	for n := 1; n <= in.TotalQuestions; n++ {
		owner := ownerOf(in.Subjects, n)
		q := Question{
			Number:      n,
			User:        p.user[n],
			Definitive:  p.defin[n],
			Preliminary: p.prelim[n],
			Assigned:    owner >= 0,
		}

		o := Classify(q)
		if o == Unassigned {
			orphans = addToRuns(orphans, n)
			continue
		}
		if forced[n] {
			o = Annulled
		}
		Apply(&results[owner], o)
	}

	return Report{
		Results:  results,
		Summary:  Summarize(results, in.Policy, in.TotalQuestions),
		Orphans:  orphans,
		Rejected: p.rejected,
	}, nil
}

// ownerOf returns the index of the subject covering question n, or -1.
func ownerOf(subjects []exam.Subject, n int) int {
	for i, s := range subjects {
		if s.Owns(n) {
			return i
		}
	}
	return -1
}
