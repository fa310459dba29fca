package grading_test

import (
	"testing"
	"time"

	"github.com/examtrack/backend/internal/domain/exam"
	"github.com/examtrack/backend/internal/grading"
)

func TestTimeline(t *testing.T) {
	p1, p2 := 0.7, 0.4
	exams := []*exam.Exam{
		{ID: "late", Board: "FCC", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Percentage: &p1},
		{ID: "ungraded", Board: "FCC", Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "early", Board: "FGV", Date: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), Percentage: &p2},
	}

	points := grading.Timeline(exams, grading.Filter{})
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].ExamID != "early" || points[1].ExamID != "late" {
		t.Errorf("expected chronological order, got %s, %s", points[0].ExamID, points[1].ExamID)
	}
	if points[1].Percentage != 0.7 {
		t.Errorf("expected 0.7, got %v", points[1].Percentage)
	}

	filtered := grading.Timeline(exams, grading.Filter{Board: "fgv"})
	if len(filtered) != 1 || filtered[0].ExamID != "early" {
		t.Errorf("unexpected filtered timeline %+v", filtered)
	}
}
