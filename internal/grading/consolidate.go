package grading

import (
	"strings"

	"github.com/examtrack/backend/internal/domain/exam"
)

// TotalRowName labels the grand-total row of a consolidated report.
const TotalRowName = "Total"

// Filter narrows the exams taken into a cross-exam report. Zero fields
// match everything.
type Filter struct {
	Kind  exam.Kind
	Board string // case-insensitive
	Year  int
}

// Match reports whether e passes the filter.
func (f Filter) Match(e *exam.Exam) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Board != "" && !strings.EqualFold(strings.TrimSpace(e.Board), strings.TrimSpace(f.Board)) {
		return false
	}
	if f.Year != 0 && e.Date.Year() != f.Year {
		return false
	}
	return true
}

// SubjectTotals is one row of a consolidated report.
type SubjectTotals struct {
	Name            string  `json:"name"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	Blank           int     `json:"blank"`
	Annulled        int     `json:"annulled"`
	Capacity        int     `json:"total_questions_capacity"`
	NetScore        int     `json:"net_score"`
	GrossPercentage float64 `json:"gross_percentage"`
	NetPercentage   float64 `json:"net_percentage"`
}

func (t *SubjectTotals) add(o SubjectTotals) {
	t.Correct += o.Correct
	t.Incorrect += o.Incorrect
	t.Blank += o.Blank
	t.Annulled += o.Annulled
	t.Capacity += o.Capacity
}

// derive fills the computed columns from the raw counters.
func (t *SubjectTotals) derive() {
	t.NetScore = t.Correct - t.Incorrect

	earned := t.Correct - t.Annulled
	if den := earned + t.Incorrect; den > 0 {
		t.GrossPercentage = float64(earned) / float64(den)
	} else {
		t.GrossPercentage = 0
	}

	t.NetPercentage = ratioFloor(t.NetScore, t.Capacity)
}

// ConsolidatedReport groups results of many exams by subject name.
type ConsolidatedReport struct {
	Subjects []SubjectTotals `json:"per_subject_name"`
	Total    SubjectTotals   `json:"total"`
	Exams    int             `json:"exams"`
}

// Consolidate sums results across every graded exam matching f, grouping by
// subject name. Rows keep the order in which subject names are first seen.
// Only exams with both subjects and results take part.
func Consolidate(exams []*exam.Exam, f Filter) ConsolidatedReport {
	report := ConsolidatedReport{
		Subjects: []SubjectTotals{},
		Total:    SubjectTotals{Name: TotalRowName},
	}
	index := make(map[string]int)

	for _, e := range exams {
		if e == nil || len(e.Results) == 0 || len(e.Subjects) == 0 || !f.Match(e) {
			continue
		}
		report.Exams++

		for _, r := range e.Results {
			i, ok := index[r.Subject]
			if !ok {
				i = len(report.Subjects)
				index[r.Subject] = i
				report.Subjects = append(report.Subjects, SubjectTotals{Name: r.Subject})
			}
			report.Subjects[i].add(SubjectTotals{
				Correct:   r.Correct,
				Incorrect: r.Incorrect,
				Blank:     r.Blank,
				Annulled:  r.Annulled,
				Capacity:  e.SubjectCapacity(r.Subject),
			})
		}
	}

	for i := range report.Subjects {
		report.Subjects[i].derive()
		report.Total.add(report.Subjects[i])
	}
	report.Total.derive()
	return report
}
