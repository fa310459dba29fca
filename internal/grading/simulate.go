package grading

// Simulation compares an exam's real score with the score it would get if
// some extra questions were annulled.
type Simulation struct {
	Original   Summary `json:"original"`
	Simulated  Summary `json:"simulated"`
	Difference int     `json:"difference"`
	Questions  []int   `json:"questions"` // the hypothetical annulments that were applied
	// Ignored lists requested numbers that could not be annulled: outside
	// 1..TotalQuestions or not covered by any subject.
	Ignored []int `json:"ignored"`
}

// SimulateAnnulments grades in twice: once as stored and once with every
// question in questions forced to Annulled. Numbers outside
// 1..TotalQuestions and questions without a subject are reported in Ignored.
// Repeated numbers count once.
func SimulateAnnulments(in Input, questions []int) (Simulation, error) {
	original, err := Grade(in)
	if err != nil {
		return Simulation{}, err
	}

	forced := make(map[int]bool, len(questions))
	applied, ignored := []int{}, []int{}
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if seen[q] {
			continue
		}
		seen[q] = true
		if q < 1 || q > in.TotalQuestions || ownerOf(in.Subjects, q) < 0 {
			ignored = append(ignored, q)
			continue
		}
		forced[q] = true
		applied = append(applied, q)
	}

	simulated, err := grade(in, forced)
	if err != nil {
		return Simulation{}, err
	}

	return Simulation{
		Original:   original.Summary,
		Simulated:  simulated.Summary,
		Difference: simulated.Summary.Score - original.Summary.Score,
		Questions:  applied,
		Ignored:    ignored,
	}, nil
}
