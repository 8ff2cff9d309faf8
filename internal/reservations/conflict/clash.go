// Package conflict is the scheduling engine: clash detection, venue
// availability, and batch validation. Every function here is a pure
// computation over its inputs; persistence and transport live elsewhere.
package conflict

import (
	"examsched/pkg/model"
	"examsched/pkg/timeslot"
)

// FindClashes returns every reservation in existing that shares venue and
// date with the candidate and whose time interval overlaps it, preserving
// the order of existing. Stored records whose time strings do not parse
// are skipped silently; flagging those is upstream validation's job, not
// a clash. A candidate with unparseable times clashes with nothing.
func FindClashes(candidate model.Candidate, existing []model.Reservation) []model.Clash {
	clashes := []model.Clash{}

	candStart, okStart := timeslot.ParseMinutes(candidate.StartTime)
	candEnd, okEnd := timeslot.ParseMinutes(candidate.EndTime)
	if !okStart || !okEnd {
		return clashes
	}

	for _, r := range existing {
		if r.Venue != candidate.Venue || r.Date != candidate.Date {
			continue
		}

		exStart, ok := timeslot.ParseMinutes(r.StartTime)
		if !ok {
			continue
		}
		exEnd, ok := timeslot.ParseMinutes(r.EndTime)
		if !ok {
			continue
		}

		if !timeslot.Overlaps(candStart, candEnd, exStart, exEnd) {
			continue
		}

		clashes = append(clashes, model.Clash{
			ID:             r.ID,
			Name:           r.Name,
			Venue:          r.Venue,
			Date:           r.Date,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			Group:          r.Group,
			Classification: timeslot.Classify(candStart, candEnd, exStart, exEnd),
		})
	}

	return clashes
}
