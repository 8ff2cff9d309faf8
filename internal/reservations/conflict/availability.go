package conflict

import (
	"examsched/internal/venues"
	apperrors "examsched/pkg/errors"
	"examsched/pkg/model"
	"examsched/pkg/timeslot"
)

// CheckAvailability reports, for every venue in the catalog in declaration
// order, whether the requested slot is free and whether the venue seats
// enough people. The two signals are independent: a venue can have seats
// but a time conflict, or be free but too small.
//
// A violated precondition yields a failure naming it; never a partial
// report.
func CheckAvailability(req model.AvailabilityRequest, catalog *venues.Catalog, existing []model.Reservation) (*model.AvailabilityReport, error) {
	if req.Date == "" {
		return nil, apperrors.InvalidInput("date is required")
	}
	start, ok := timeslot.ParseMinutes(req.StartTime)
	if !ok {
		return nil, apperrors.InvalidInput("start time must be a valid HH:MM time")
	}
	end, ok := timeslot.ParseMinutes(req.EndTime)
	if !ok {
		return nil, apperrors.InvalidInput("end time must be a valid HH:MM time")
	}
	if end <= start {
		return nil, apperrors.InvalidInput("end time must be after start time")
	}
	if req.SeatsRequired < 1 {
		return nil, apperrors.InvalidInput("seats required must be at least 1")
	}

	report := &model.AvailabilityReport{
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SeatsRequired: req.SeatsRequired,
		Venues:        make([]model.VenueAvailability, 0, catalog.Len()),
	}

	for _, venue := range catalog.Venues() {
		probe := model.Candidate{
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Venue:     venue.Name,
		}
		conflicts := FindClashes(probe, existing)

		report.Venues = append(report.Venues, model.VenueAvailability{
			Name:                    venue.Name,
			Capacity:                venue.Capacity,
			Available:               len(conflicts) == 0,
			HasEnoughSeats:          venue.Capacity >= req.SeatsRequired,
			ConflictingReservations: conflicts,
		})
	}

	return report, nil
}
