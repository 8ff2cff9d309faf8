package service

import (
	"context"
	"errors"
	"time"

	"examsched/internal/reservations/conflict"
	reserrors "examsched/internal/reservations/errors"
	"examsched/internal/reservations/events"
	"examsched/internal/reservations/repository"
	"examsched/internal/reservations/validator"
	"examsched/internal/venues"
	"examsched/pkg/config"
	apperrors "examsched/pkg/errors"
	"examsched/pkg/model"
)

// ReservationService orchestrates the pure conflict engine against the
// repository snapshot. Validation results and clashes come back as data;
// an error return always means the operation itself could not run.
type ReservationService interface {
	List(ctx context.Context) []model.Reservation
	Submit(ctx context.Context, cand *model.Candidate) (*model.Reservation, []model.Clash, error)
	Availability(ctx context.Context, req model.AvailabilityRequest) (*model.AvailabilityReport, error)
	ValidateBatch(ctx context.Context, rows []model.BatchRow) *model.BatchResult
	CommitBatch(ctx context.Context, rows []model.BatchRow) (*model.BatchCommitResult, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	validator *validator.ReservationValidator
	batch     *conflict.BatchValidator
	catalog   *venues.Catalog
	publisher *events.Publisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	rv *validator.ReservationValidator,
	catalog *venues.Catalog,
	publisher *events.Publisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		validator: rv,
		batch:     conflict.NewBatchValidator(rv),
		catalog:   catalog,
		publisher: publisher,
		cfg:       cfg,
	}
}

// snapshot is the "existing" view every check runs against. A repository
// failure degrades to an empty snapshot so downstream callers keep
// functioning; nothing is fabricated, and the failure is logged.
func (s *reservationService) snapshot(ctx context.Context) []model.Reservation {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservation snapshot, degrading to empty", "error", err)
		return []model.Reservation{}
	}
	return existing
}

func (s *reservationService) List(ctx context.Context) []model.Reservation {
	return s.snapshot(ctx)
}

// Submit validates one candidate and either persists it or reports every
// conflicting reservation. The window between the snapshot read and the
// insert is not serialized: two concurrent submissions for the same slot
// can both pass and both land. That best-effort contract is deliberate.
func (s *reservationService) Submit(ctx context.Context, cand *model.Candidate) (*model.Reservation, []model.Clash, error) {
	s.validator.Normalize(cand)
	if errs := s.validator.ValidateCandidate(cand); len(errs) > 0 {
		return nil, nil, apperrors.Validation("Invalid reservation", map[string]any{
			"errors": errs.Messages(),
		})
	}

	clashes := conflict.FindClashes(*cand, s.snapshot(ctx))
	if len(clashes) > 0 {
		return nil, clashes, nil
	}

	res := &model.Reservation{
		ID:            time.Now().UnixMilli(),
		Name:          cand.Name,
		Date:          cand.Date,
		StartTime:     cand.StartTime,
		EndTime:       cand.EndTime,
		Venue:         cand.Venue,
		Group:         cand.Group,
		ResourceCount: cand.ResourceCount,
	}

	if err := s.repo.Insert(ctx, res); err != nil {
		if repository.IsDuplicateKey(err) {
			// Same-millisecond submission took this id; bump once.
			res.ID++
			err = s.repo.Insert(ctx, res)
		}
		if err != nil {
			s.cfg.Log.Error("Failed to save reservation", "error", err)
			return nil, nil, apperrors.Internal("Failed to save reservation", err)
		}
	}

	s.publisher.ReservationCreated(ctx, res)

	s.cfg.Log.Info("Reservation created",
		"id", res.ID,
		"venue", res.Venue,
		"date", res.Date,
		"start_time", res.StartTime,
		"end_time", res.EndTime,
	)
	return res, nil, nil
}

func (s *reservationService) Availability(ctx context.Context, req model.AvailabilityRequest) (*model.AvailabilityReport, error) {
	return conflict.CheckAvailability(req, s.catalog, s.snapshot(ctx))
}

func (s *reservationService) ValidateBatch(ctx context.Context, rows []model.BatchRow) *model.BatchResult {
	result := s.batch.Validate(rows, s.snapshot(ctx))

	s.cfg.Log.Info("Batch validated",
		"total_rows", result.Summary.TotalRows,
		"valid_rows", result.Summary.ValidRows,
		"invalid_rows", result.Summary.InvalidRows,
		"clashing_rows", result.Summary.ClashingRows,
	)
	return result
}

// CommitBatch persists the rows the caller decided to keep. Ids derive
// from one shared base plus the row's position, so a batch committed
// within a single millisecond still gets unique ids.
func (s *reservationService) CommitBatch(ctx context.Context, rows []model.BatchRow) (*model.BatchCommitResult, error) {
	if len(rows) == 0 {
		return &model.BatchCommitResult{}, nil
	}

	base := time.Now().UnixMilli()
	reservations := make([]model.Reservation, len(rows))
	ids := make([]int64, len(rows))
	for i := range rows {
		s.validator.Normalize(&rows[i].Candidate)
		id := base + int64(i)
		ids[i] = id
		reservations[i] = model.Reservation{
			ID:            id,
			Name:          rows[i].Name,
			Date:          rows[i].Date,
			StartTime:     rows[i].StartTime,
			EndTime:       rows[i].EndTime,
			Venue:         rows[i].Venue,
			Group:         rows[i].Group,
			ResourceCount: rows[i].ResourceCount,
		}
	}

	saved, err := s.repo.InsertBatch(ctx, reservations)
	if err != nil {
		s.cfg.Log.Error("Failed to commit reservation batch", "rows", len(rows), "error", err)
		return nil, apperrors.Internal("Failed to commit reservation batch", err)
	}

	if saved > 0 {
		s.publisher.BatchCommitted(ctx, ids, saved)
	}

	s.cfg.Log.Info("Batch committed", "saved", saved, "failed", len(rows)-saved)
	return &model.BatchCommitResult{
		SavedCount:  saved,
		FailedCount: len(rows) - saved,
	}, nil
}

func (s *reservationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to delete reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.publisher.ReservationDeleted(ctx, id)

	s.cfg.Log.Info("Reservation deleted", "id", id)
	return nil
}

func (s *reservationService) Clear(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to clear reservations", "error", err)
		return 0, apperrors.Internal("Failed to clear reservations", err)
	}

	s.cfg.Log.Info("All reservations cleared", "removed_count", removed)
	return removed, nil
}
