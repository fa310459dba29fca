package answerset_test

import (
	"testing"

	"github.com/examtrack/backend/internal/domain/answerset"
)

func TestParse_Basic(t *testing.T) {
	set := answerset.Parse("1:A,2:B,10:E")

	if len(set) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(set))
	}
	if a, ok := set.Get(10); !ok || a != "E" {
		t.Errorf("expected question 10 to be E, got %q (present=%v)", a, ok)
	}
	if _, ok := set.Get(3); ok {
		t.Error("expected question 3 to be absent")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", ","} {
		set := answerset.Parse(raw)
		if set == nil {
			t.Fatalf("expected non-nil set for %q", raw)
		}
		if !set.Empty() {
			t.Errorf("expected empty set for %q, got %v", raw, set)
		}
	}
}

func TestParseWithRejects_SkipsMalformed(t *testing.T) {
	set, rejected := answerset.ParseWithRejects("1:A,2,3:,x:B,0:C,-4:D,5:AB,6:c, 7 : d ")

	want := answerset.Set{1: "A", 6: "C", 7: "D"}
	if len(set) != len(want) {
		t.Fatalf("expected %d answers, got %v", len(want), set)
	}
	for q, a := range want {
		if set[q] != a {
			t.Errorf("question %d: expected %q, got %q", q, a, set[q])
		}
	}

	if len(rejected) != 6 {
		t.Errorf("expected 6 rejected entries, got %d: %q", len(rejected), rejected)
	}
}

func TestParse_DuplicateLastWins(t *testing.T) {
	set := answerset.Parse("3:A,3:B")

	if set[3] != "B" {
		t.Errorf("expected last entry to win, got %q", set[3])
	}
}

func TestParse_AnnulledMarker(t *testing.T) {
	set := answerset.Parse("4:n")

	if set[4] != answerset.AnnulledMarker {
		t.Errorf("expected annulled marker, got %q", set[4])
	}
}

func TestFormat_SortedCanonical(t *testing.T) {
	set := answerset.Set{10: "E", 2: "B", 1: "A"}

	if got := set.Format(); got != "1:A,2:B,10:E" {
		t.Errorf("unexpected format %q", got)
	}
	if got := (answerset.Set{}).Format(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := answerset.Normalize(" 2:b ,bad,1:a"); got != "1:A,2:B" {
		t.Errorf("unexpected normalized form %q", got)
	}
}
