package grading

import (
	"sort"
	"time"

	"github.com/examtrack/backend/internal/domain/exam"
)

// TimelinePoint is one graded exam on the performance chart.
type TimelinePoint struct {
	ExamID     string    `json:"exam_id"`
	Title      string    `json:"title"`
	Board      string    `json:"board"`
	Date       time.Time `json:"date"`
	Percentage float64   `json:"percentage"`
}

// Timeline returns graded exams matching f ordered by date, oldest first.
func Timeline(exams []*exam.Exam, f Filter) []TimelinePoint {
	points := []TimelinePoint{}
	for _, e := range exams {
		if e == nil || e.Percentage == nil || !f.Match(e) {
			continue
		}
		points = append(points, TimelinePoint{
			ExamID:     e.ID,
			Title:      e.Title,
			Board:      e.Board,
			Date:       e.Date,
			Percentage: *e.Percentage,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
