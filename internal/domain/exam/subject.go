package exam

// Subject is a named block of contiguous questions. Start and End are
// 1-based and inclusive.
type Subject struct {
	ID            string
	Name          string
	QuestionCount int
	Start         int
	End           int
}

// Owns reports whether question q falls in the subject's range.
func (s Subject) Owns(q int) bool {
	return q >= s.Start && q <= s.End
}

// AssignRanges lays subjects out back to back starting at question 1, in the
// given order. A subject with a non-positive count gets an empty range
// (Start > End) and does not move the cursor.
func AssignRanges(subjects []Subject) []Subject {
	out := make([]Subject, len(subjects))
	next := 1
	for i, s := range subjects {
		n := s.QuestionCount
		if n < 0 {
			n = 0
		}
		s.Start = next
		s.End = next + n - 1
		next += n
		out[i] = s
	}
	return out
}
