package grading

import "github.com/examtrack/backend/internal/domain/exam"

// Summary is the exam-wide total of a grading run.
type Summary struct {
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Blank      int     `json:"blank"`
	Annulled   int     `json:"annulled"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

// Summarize sums the subject results and scores them under policy.
// Net scoring subtracts incorrect from correct; annulled questions already
// sit inside Correct, so they need no separate term. The percentage is
// floored at zero.
func Summarize(results []exam.Result, policy exam.ScoringPolicy, totalQuestions int) Summary {
	var s Summary
	for _, r := range results {
		s.Correct += r.Correct
		s.Incorrect += r.Incorrect
		s.Blank += r.Blank
		s.Annulled += r.Annulled
	}

	s.Score = Score(s.Correct, s.Incorrect, policy)
	s.Percentage = ratioFloor(s.Score, totalQuestions)
	return s
}

// Score applies a scoring policy to raw counts.
func Score(correct, incorrect int, policy exam.ScoringPolicy) int {
	if policy == exam.PolicyNet {
		return correct - incorrect
	}
	return correct
}

// ratioFloor returns max(0, num/den), or 0 when den is not positive.
func ratioFloor(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return max(0, float64(num)/float64(den))
}
