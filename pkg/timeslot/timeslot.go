// Package timeslot holds the time-of-day arithmetic every conflict check
// in the system is built on. Times are integer minutes since midnight,
// intervals are half-open [start, end): an interval ending exactly when
// another begins does not overlap.
package timeslot

import "fmt"

// Overlap classifications, ordered by diagnostic priority.
const (
	OverlapExact        = "exact"
	OverlapStartsDuring = "starts-during"
	OverlapEndsDuring   = "ends-during"
	OverlapEncompasses  = "encompasses"
	OverlapGeneric      = "overlaps"
)

const minutesPerDay = 24 * 60

// ParseMinutes parses a canonical "HH:MM" time of day into minutes since
// midnight. The second return value is false on malformed input: empty
// string, wrong separator, non-numeric components, or values outside the
// real hour/minute ranges. All failure modes are indistinguishable on
// purpose; callers must treat them identically.
func ParseMinutes(s string) (int, bool) {
	if len(s) < 3 || len(s) > 5 {
		return 0, false
	}

	sep := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			sep = i
			break
		}
	}
	if sep < 1 || sep > 2 || len(s)-sep-1 != 2 {
		return 0, false
	}

	hour, ok := parseDigits(s[:sep])
	if !ok || hour > 23 {
		return 0, false
	}
	minute, ok := parseDigits(s[sep+1:])
	if !ok || minute > 59 {
		return 0, false
	}

	return hour*60 + minute, true
}

func parseDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// FormatMinutes renders minutes since midnight back to "HH:MM".
func FormatMinutes(m int) string {
	m = ((m % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. This predicate
// is the single source of truth for every clash decision; do not restate
// the boundary conditions anywhere else.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// Classify labels how a candidate interval [nS,nE) relates to an existing
// interval [eS,eE). The label is diagnostic only; the clash decision is
// always Overlaps. Evaluation order matters: the first matching shape wins.
func Classify(nS, nE, eS, eE int) string {
	switch {
	case nS == eS:
		return OverlapExact
	case nS < eE && nS >= eS:
		return OverlapStartsDuring
	case nE > eS && nE <= eE:
		return OverlapEndsDuring
	case nS < eS && nE > eE:
		return OverlapEncompasses
	default:
		return OverlapGeneric
	}
}
