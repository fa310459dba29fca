package exam_test

import (
	"testing"

	"github.com/examtrack/backend/internal/domain/exam"
)

func TestAssignRanges(t *testing.T) {
	got := exam.AssignRanges([]exam.Subject{
		{Name: "A", QuestionCount: 30},
		{Name: "B", QuestionCount: 40},
		{Name: "C", QuestionCount: 50},
	})

	want := map[string][2]int{"A": {1, 30}, "B": {31, 70}, "C": {71, 120}}
	for _, s := range got {
		r := want[s.Name]
		if s.Start != r[0] || s.End != r[1] {
			t.Errorf("%s: expected [%d,%d], got [%d,%d]", s.Name, r[0], r[1], s.Start, s.End)
		}
	}
}

func TestAssignRanges_ZeroCountClaimsNothing(t *testing.T) {
	got := exam.AssignRanges([]exam.Subject{
		{Name: "A", QuestionCount: 5},
		{Name: "Empty", QuestionCount: 0},
		{Name: "Negative", QuestionCount: -3},
		{Name: "B", QuestionCount: 5},
	})

	for _, s := range got[1:3] {
		if s.Start <= s.End {
			t.Errorf("%s: expected empty range, got [%d,%d]", s.Name, s.Start, s.End)
		}
		for q := 1; q <= 10; q++ {
			if s.Owns(q) {
				t.Errorf("%s: should not own question %d", s.Name, q)
			}
		}
	}

	if got[3].Start != 6 || got[3].End != 10 {
		t.Errorf("B: expected [6,10], got [%d,%d]", got[3].Start, got[3].End)
	}
}

func TestAssignRanges_DoesNotMutateInput(t *testing.T) {
	in := []exam.Subject{{Name: "A", QuestionCount: 3}}
	_ = exam.AssignRanges(in)

	if in[0].Start != 0 || in[0].End != 0 {
		t.Error("expected input slice to be left untouched")
	}
}
