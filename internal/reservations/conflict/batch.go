package conflict

import (
	"examsched/internal/reservations/validator"
	"examsched/pkg/model"
	"examsched/pkg/timeslot"
)

// BatchValidator runs field validation plus two-pass clash detection over
// an ordered batch of candidate rows.
type BatchValidator struct {
	rows *validator.ReservationValidator
}

func NewBatchValidator(rows *validator.ReservationValidator) *BatchValidator {
	return &BatchValidator{rows: rows}
}

type parsedTimes struct {
	start, end int
	ok         bool
}

// Validate processes rows in input order. Rows with any field or time
// error never enter clash checking and keep empty clash lists. Clean rows
// are checked against the existing snapshot and against every earlier
// clean row; an intra-batch match is recorded on BOTH rows, which is why
// an earlier row can gain clash entries after it was first processed.
// Validity and the summary are therefore computed in a final pass over
// the complete result set, never incrementally.
func (b *BatchValidator) Validate(rows []model.BatchRow, existing []model.Reservation) *model.BatchResult {
	results := make([]model.ValidationResult, len(rows))
	parsed := make([]parsedTimes, len(rows))

	for i := range rows {
		b.rows.Normalize(&rows[i].Candidate)
		errs := b.rows.ValidateCandidate(&rows[i].Candidate)

		results[i] = model.ValidationResult{
			RowIndex:            rows[i].RowIndex,
			Errors:              errs.Messages(),
			ClashesWithExisting: []model.Clash{},
			ClashesWithBatch:    []model.BatchClash{},
		}
		if len(errs) > 0 {
			continue
		}

		start, _ := timeslot.ParseMinutes(rows[i].StartTime)
		end, _ := timeslot.ParseMinutes(rows[i].EndTime)
		parsed[i] = parsedTimes{start: start, end: end, ok: true}

		results[i].ClashesWithExisting = FindClashes(rows[i].Candidate, existing)

		for j := 0; j < i; j++ {
			if !parsed[j].ok {
				continue
			}
			if rows[j].Venue != rows[i].Venue || rows[j].Date != rows[i].Date {
				continue
			}
			if !timeslot.Overlaps(parsed[i].start, parsed[i].end, parsed[j].start, parsed[j].end) {
				continue
			}

			results[i].ClashesWithBatch = append(results[i].ClashesWithBatch,
				batchClash(rows[j], timeslot.Classify(parsed[i].start, parsed[i].end, parsed[j].start, parsed[j].end)))

			// Mirror entry: the earlier row learns about the later one.
			results[j].ClashesWithBatch = append(results[j].ClashesWithBatch,
				batchClash(rows[i], timeslot.Classify(parsed[j].start, parsed[j].end, parsed[i].start, parsed[i].end)))
		}
	}

	summary := model.BatchSummary{TotalRows: len(rows)}
	for i := range results {
		r := &results[i]
		hasClash := len(r.ClashesWithExisting) > 0 || len(r.ClashesWithBatch) > 0
		r.Valid = len(r.Errors) == 0 && !hasClash

		if r.Valid {
			summary.ValidRows++
		}
		if len(r.Errors) > 0 {
			summary.InvalidRows++
		}
		if hasClash {
			summary.ClashingRows++
		}
	}

	return &model.BatchResult{
		Results: results,
		Summary: summary,
	}
}

func batchClash(row model.BatchRow, classification string) model.BatchClash {
	return model.BatchClash{
		RowIndex:       row.RowIndex,
		Name:           row.Name,
		Venue:          row.Venue,
		Date:           row.Date,
		StartTime:      row.StartTime,
		EndTime:        row.EndTime,
		Group:          row.Group,
		Classification: classification,
	}
}
