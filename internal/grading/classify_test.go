package grading_test

import (
	"testing"

	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/grading"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		q    grading.Question
		want grading.Outcome
	}{
		{"unassigned wins over everything", grading.Question{User: "A", Definitive: "N"}, grading.Unassigned},
		{"keys disagree", grading.Question{Assigned: true, User: "B", Preliminary: "B", Definitive: "C"}, grading.Annulled},
		{"annulled even when blank", grading.Question{Assigned: true, Preliminary: "B", Definitive: "C"}, grading.Annulled},
		{"annulment marker", grading.Question{Assigned: true, User: "A", Definitive: "N"}, grading.Annulled},
		{"annulment marker without preliminary", grading.Question{Assigned: true, Definitive: "N"}, grading.Annulled},
		{"blank", grading.Question{Assigned: true, Definitive: "A"}, grading.Blank},
		{"correct against definitive", grading.Question{Assigned: true, User: "A", Preliminary: "A", Definitive: "A"}, grading.Correct},
		{"fallback to preliminary", grading.Question{Assigned: true, User: "D", Preliminary: "D"}, grading.Correct},
		{"only preliminary present is not annulment", grading.Question{Assigned: true, User: "E", Preliminary: "D"}, grading.Incorrect},
		{"incorrect", grading.Question{Assigned: true, User: "B", Definitive: "A"}, grading.Incorrect},
		{"answered with no key at all", grading.Question{Assigned: true, User: "B"}, grading.Incorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := grading.Classify(tc.q); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestApply_AnnulledCountsAsCorrect(t *testing.T) {
	var r exam.Result
	grading.Apply(&r, grading.Annulled)

	if r.Annulled != 1 || r.Correct != 1 {
		t.Errorf("expected annulled=1 correct=1, got %+v", r)
	}
	if r.Incorrect != 0 || r.Blank != 0 {
		t.Errorf("expected no incorrect or blank, got %+v", r)
	}
}

func TestApply_Unassigned(t *testing.T) {
	var r exam.Result
	grading.Apply(&r, grading.Unassigned)

	if r != (exam.Result{}) {
		t.Errorf("expected untouched result, got %+v", r)
	}
}
