// Package answerset parses and formats the sparse "question:answer" lists used
// for user answers and official answer keys.
//
// The wire form is a comma-separated list of pairs such as "1:A,2:C,5:N".
// Parsing is lenient: entries that cannot be read are skipped and the rest of
// the list is still used.
package answerset

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// AnnulledMarker is the definitive-key answer a board uses to void a question.
const AnnulledMarker = "N"

// Set maps a 1-based question number to a single answer character.
type Set map[int]string

// Parse reads a serialized answer list, skipping malformed entries.
// Empty input yields an empty (non-nil) Set.
func Parse(raw string) Set {
	set, _ := ParseWithRejects(raw)
	return set
}

// ParseWithRejects is Parse, additionally returning the raw entries that were
// skipped. When a question number repeats, the last entry wins.
func ParseWithRejects(raw string) (Set, []string) {
	set := make(Set)
	if strings.TrimSpace(raw) == "" {
		return set, nil
	}

	var rejected []string
	for _, entry := range strings.Split(raw, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		q, a, ok := parseEntry(entry)
		if !ok {
			rejected = append(rejected, entry)
			continue
		}
		set[q] = a
	}
	return set, rejected
}

func parseEntry(entry string) (int, string, bool) {
	num, ans, found := strings.Cut(entry, ":")
	if !found {
		return 0, "", false
	}

	q, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || q < 1 {
		return 0, "", false
	}

	ans = strings.ToUpper(strings.TrimSpace(ans))
	if utf8.RuneCountInString(ans) != 1 {
		return 0, "", false
	}
	return q, ans, true
}

// Get returns the answer for question q and whether one exists.
func (s Set) Get(q int) (string, bool) {
	a, ok := s[q]
	return a, ok
}

// Empty reports whether the set holds no answers.
func (s Set) Empty() bool {
	return len(s) == 0
}

// Format serializes the set in ascending question order.
func (s Set) Format() string {
	keys := make([]int, 0, len(s))
	for q := range s {
		keys = append(keys, q)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, q := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(q))
		b.WriteByte(':')
		b.WriteString(s[q])
	}
	return b.String()
}

// Normalize re-serializes raw in canonical form, dropping malformed entries.
func Normalize(raw string) string {
	return Parse(raw).Format()
}
