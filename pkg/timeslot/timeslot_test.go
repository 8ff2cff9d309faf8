package timeslot

import "testing"

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"midnight", "00:00", 0, true},
		{"morning", "09:30", 570, true},
		{"single digit hour", "9:30", 570, true},
		{"end of day", "23:59", 1439, true},
		{"noon", "12:00", 720, true},
		{"empty", "", 0, false},
		{"no separator", "0930", 0, false},
		{"wrong separator", "09.30", 0, false},
		{"hour out of range", "24:00", 0, false},
		{"minute out of range", "12:60", 0, false},
		{"one digit minute", "12:3", 0, false},
		{"three digit minute", "12:345", 0, false},
		{"letters", "ab:cd", 0, false},
		{"negative hour", "-1:30", 0, false},
		{"trailing garbage", "12:30x", 0, false},
		{"leading colon", ":30", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMinutes(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseMinutes(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{1439, "23:59"},
		{720, "12:00"},
		{1440, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"partial overlap", 540, 600, 570, 630, true},
		{"contained", 540, 660, 570, 600, true},
		{"containing", 570, 600, 540, 660, true},
		{"one minute overlap", 540, 600, 599, 660, true},
		{"one minute past the boundary", 540, 601, 600, 660, true},
		{"back to back", 540, 600, 600, 660, false},
		{"back to back reversed", 600, 660, 540, 600, false},
		{"disjoint", 540, 600, 720, 780, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
			// The predicate is symmetric in its two intervals.
			if got := Overlaps(tt.s2, tt.e2, tt.s1, tt.e1); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v (symmetry)", tt.s2, tt.e2, tt.s1, tt.e1, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		nS, nE, eS, eE int
		want           string
	}{
		{"same start same end", 540, 600, 540, 600, OverlapExact},
		{"same start different end", 540, 630, 540, 600, OverlapExact},
		{"starts inside existing", 570, 660, 540, 600, OverlapStartsDuring},
		{"ends inside existing", 500, 570, 540, 600, OverlapEndsDuring},
		{"ends exactly at existing end", 500, 600, 540, 600, OverlapEndsDuring},
		{"swallows existing", 500, 660, 540, 600, OverlapEncompasses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.nS, tt.nE, tt.eS, tt.eE)
			if got != tt.want {
				t.Fatalf("Classify(%d,%d,%d,%d) = %q, want %q", tt.nS, tt.nE, tt.eS, tt.eE, got, tt.want)
			}
			// Classification is a pure function of its inputs.
			if again := Classify(tt.nS, tt.nE, tt.eS, tt.eE); again != got {
				t.Errorf("Classify not stable: %q then %q", got, again)
			}
		})
	}
}

// Exact start wins even when the candidate also encompasses or ends
// inside the existing interval.
func TestClassifyPriority(t *testing.T) {
	if got := Classify(540, 570, 540, 600); got != OverlapExact {
		t.Errorf("same start, ends inside: got %q, want %q", got, OverlapExact)
	}
	if got := Classify(540, 660, 540, 600); got != OverlapExact {
		t.Errorf("same start, runs longer: got %q, want %q", got, OverlapExact)
	}
}
