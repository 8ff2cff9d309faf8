package model

import "time"

// Reservation is a committed exam booking. Records are immutable once
// persisted; the only mutation the system knows is deletion.
type Reservation struct {
	ID            int64     `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Date          string    `json:"date" bson:"date"`
	StartTime     string    `json:"start_time" bson:"start_time"`
	EndTime       string    `json:"end_time" bson:"end_time"`
	Venue         string    `json:"venue" bson:"venue"`
	Group         string    `json:"group" bson:"group"`
	ResourceCount int       `json:"resource_count" bson:"resource_count"`
	CreatedAt     time.Time `json:"created_at,omitempty" bson:"created_at"`
}

// Candidate is a reservation as submitted, before an id is assigned.
// Field declaration order drives the order of validation messages.
type Candidate struct {
	Name          string `json:"name" validate:"required"`
	Date          string `json:"date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required,timeofday"`
	EndTime       string `json:"end_time" validate:"required,timeofday"`
	Venue         string `json:"venue" validate:"required"`
	Group         string `json:"group" validate:"required"`
	ResourceCount int    `json:"resource_count" validate:"min=0"`
}

// BatchRow is one candidate inside a bulk import. RowIndex is a
// caller-supplied correlation key, not an array position.
type BatchRow struct {
	RowIndex int `json:"row_index"`
	Candidate
}

// Clash describes one persisted reservation that conflicts with a
// candidate, with enough fields to render a human-readable message.
type Clash struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Venue          string `json:"venue"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Group          string `json:"group"`
	Classification string `json:"classification"`
}

// BatchClash describes a conflicting sibling row within the same batch.
type BatchClash struct {
	RowIndex       int    `json:"row_index"`
	Name           string `json:"name"`
	Venue          string `json:"venue"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Group          string `json:"group"`
	Classification string `json:"classification"`
}

// ValidationResult is the per-row outcome of batch validation. A row is
// valid only with zero errors and zero entries in both clash lists.
type ValidationResult struct {
	RowIndex            int          `json:"row_index"`
	Valid               bool         `json:"valid"`
	Errors              []string     `json:"errors"`
	ClashesWithExisting []Clash      `json:"clashes_with_existing"`
	ClashesWithBatch    []BatchClash `json:"clashes_with_batch"`
}

type BatchSummary struct {
	TotalRows    int `json:"total_rows"`
	ValidRows    int `json:"valid_rows"`
	InvalidRows  int `json:"invalid_rows"`
	ClashingRows int `json:"clashing_rows"`
}

type BatchResult struct {
	Results []ValidationResult `json:"results"`
	Summary BatchSummary       `json:"summary"`
}

type BatchCommitResult struct {
	SavedCount  int `json:"saved_count"`
	FailedCount int `json:"failed_count"`
}

type AvailabilityRequest struct {
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	SeatsRequired int    `json:"seats_required"`
}

// VenueAvailability reports one venue for a requested slot. Available
// and HasEnoughSeats are independent; the caller decides which
// combination is acceptable.
type VenueAvailability struct {
	Name                    string  `json:"name"`
	Capacity                int     `json:"capacity"`
	Available               bool    `json:"available"`
	HasEnoughSeats          bool    `json:"has_enough_seats"`
	ConflictingReservations []Clash `json:"conflicting_reservations"`
}

// AvailabilityReport lists every venue in the catalog, in catalog
// declaration order.
type AvailabilityReport struct {
	Date          string              `json:"date"`
	StartTime     string              `json:"start_time"`
	EndTime       string              `json:"end_time"`
	SeatsRequired int                 `json:"seats_required"`
	Venues        []VenueAvailability `json:"venues"`
}

type Venue struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
