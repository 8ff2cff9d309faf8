package service

import (
	"context"
	"errors"
	"io"
	"testing"

	reserrors "examsched/internal/reservations/errors"
	"examsched/internal/reservations/events"
	"examsched/internal/reservations/validator"
	"examsched/internal/venues"
	"examsched/pkg/config"
	apperrors "examsched/pkg/errors"
	"examsched/pkg/logger"
	"examsched/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockRepo struct {
	reservations []model.Reservation
	findErr      error

	inserted  []model.Reservation
	insertErr []error // popped per call; nil entry means success

	batchSaved int
	batchErr   error
	batchRows  []model.Reservation

	deleteErr      error
	deletedID      int64
	deleteAllCount int64
	deleteAllErr   error
}

func (m *mockRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.reservations, nil
}

func (m *mockRepo) Insert(ctx context.Context, r *model.Reservation) error {
	var err error
	if len(m.insertErr) > 0 {
		err = m.insertErr[0]
		m.insertErr = m.insertErr[1:]
	}
	if err != nil {
		return err
	}
	m.inserted = append(m.inserted, *r)
	return nil
}

func (m *mockRepo) InsertBatch(ctx context.Context, rs []model.Reservation) (int, error) {
	if m.batchErr != nil {
		return 0, m.batchErr
	}
	m.batchRows = rs
	return m.batchSaved, nil
}

func (m *mockRepo) DeleteByID(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func (m *mockRepo) DeleteAll(ctx context.Context) (int64, error) {
	return m.deleteAllCount, m.deleteAllErr
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.reservations)), nil
}

func newTestService(t *testing.T, repo *mockRepo) ReservationService {
	t.Helper()
	log := logger.New(logger.Config{Output: io.Discard})
	cfg := &config.Config{Log: log}
	catalog := venues.NewCatalog([]model.Venue{
		{Name: "Great Hall", Capacity: 250},
		{Name: "Seminar Room", Capacity: 25},
	})
	publisher := events.NewPublisher(nil, log, "test")
	return NewReservationService(repo, validator.NewReservationValidator(log), catalog, publisher, cfg)
}

func validCandidate() *model.Candidate {
	return &model.Candidate{
		Name:      "CS101 Final",
		Date:      "2026-06-15",
		StartTime: "09:00",
		EndTime:   "11:00",
		Venue:     "Great Hall",
		Group:     "CS-Y1",
	}
}

func TestListDegradesToEmptyOnRepositoryFailure(t *testing.T) {
	repo := &mockRepo{findErr: errors.New("mongo down")}
	svc := newTestService(t, repo)

	got := svc.List(context.Background())
	if got == nil {
		t.Fatal("List returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("List returned %d reservations, want 0", len(got))
	}
}

func TestSubmitPersistsValidCandidate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	created, clashes, err := svc.Submit(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clashes) != 0 {
		t.Fatalf("unexpected clashes: %v", clashes)
	}
	if created == nil || created.ID == 0 {
		t.Fatal("created reservation has no id")
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("repo saw %d inserts, want 1", len(repo.inserted))
	}
	if repo.inserted[0].Venue != "Great Hall" || repo.inserted[0].StartTime != "09:00" {
		t.Errorf("persisted fields wrong: %+v", repo.inserted[0])
	}
}

func TestSubmitRejectsInvalidCandidate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	cand := validCandidate()
	cand.Name = ""

	_, _, err := svc.Submit(context.Background(), cand)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeValidation)
	}
	if len(repo.inserted) != 0 {
		t.Error("invalid candidate reached the repository")
	}
}

func TestSubmitReportsClashesWithoutPersisting(t *testing.T) {
	repo := &mockRepo{
		reservations: []model.Reservation{{
			ID:        1,
			Name:      "Existing",
			Venue:     "Great Hall",
			Date:      "2026-06-15",
			StartTime: "10:00",
			EndTime:   "12:00",
			Group:     "G1",
		}},
	}
	svc := newTestService(t, repo)

	created, clashes, err := svc.Submit(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != nil {
		t.Error("clashing candidate was created")
	}
	if len(clashes) != 1 || clashes[0].ID != 1 {
		t.Fatalf("clashes = %v, want one with ID 1", clashes)
	}
	if len(repo.inserted) != 0 {
		t.Error("clashing candidate reached the repository")
	}
}

// Candidates against venues the catalog does not know are accepted; the
// catalog gates availability reporting, not submission.
func TestSubmitAcceptsUnknownVenue(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	cand := validCandidate()
	cand.Venue = "Gymnasium"

	created, clashes, err := svc.Submit(context.Background(), cand)
	if err != nil || len(clashes) != 0 || created == nil {
		t.Fatalf("Submit = (%v, %v, %v), want created reservation", created, clashes, err)
	}
}

func TestSubmitRetriesOnceOnDuplicateID(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	repo := &mockRepo{insertErr: []error{dup, nil}}
	svc := newTestService(t, repo)

	created, _, err := svc.Submit(context.Background(), validCandidate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("repo saw %d successful inserts, want 1", len(repo.inserted))
	}
	if created.ID != repo.inserted[0].ID {
		t.Error("returned id differs from persisted id")
	}
}

func TestSubmitInternalErrorOnRepositoryFailure(t *testing.T) {
	repo := &mockRepo{insertErr: []error{errors.New("write failed")}}
	svc := newTestService(t, repo)

	_, _, err := svc.Submit(context.Background(), validCandidate())
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeInternal)
	}
}

func TestCommitBatchAssignsSequentialIDs(t *testing.T) {
	repo := &mockRepo{batchSaved: 3}
	svc := newTestService(t, repo)

	rows := []model.BatchRow{
		{RowIndex: 0, Candidate: *validCandidate()},
		{RowIndex: 1, Candidate: *validCandidate()},
		{RowIndex: 2, Candidate: *validCandidate()},
	}

	result, err := svc.CommitBatch(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SavedCount != 3 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want saved=3 failed=0", result)
	}

	if len(repo.batchRows) != 3 {
		t.Fatalf("repo saw %d rows, want 3", len(repo.batchRows))
	}
	base := repo.batchRows[0].ID
	for i, r := range repo.batchRows {
		if r.ID != base+int64(i) {
			t.Errorf("row %d id = %d, want %d", i, r.ID, base+int64(i))
		}
	}
}

func TestCommitBatchPartialSave(t *testing.T) {
	repo := &mockRepo{batchSaved: 1}
	svc := newTestService(t, repo)

	rows := []model.BatchRow{
		{RowIndex: 0, Candidate: *validCandidate()},
		{RowIndex: 1, Candidate: *validCandidate()},
	}

	result, err := svc.CommitBatch(context.Background(), rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SavedCount != 1 || result.FailedCount != 1 {
		t.Errorf("result = %+v, want saved=1 failed=1", result)
	}
}

func TestCommitBatchEmpty(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	result, err := svc.CommitBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SavedCount != 0 || result.FailedCount != 0 {
		t.Errorf("result = %+v, want zero counts", result)
	}
	if repo.batchRows != nil {
		t.Error("empty batch reached the repository")
	}
}

func TestDeleteMapsNotFound(t *testing.T) {
	repo := &mockRepo{deleteErr: reserrors.ErrNotFound}
	svc := newTestService(t, repo)

	err := svc.Delete(context.Background(), 123)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestDeleteSuccess(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(t, repo)

	if err := svc.Delete(context.Background(), 456); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != 456 {
		t.Errorf("repo deleted id %d, want 456", repo.deletedID)
	}
}

func TestClearReturnsRemovedCount(t *testing.T) {
	repo := &mockRepo{deleteAllCount: 7}
	svc := newTestService(t, repo)

	removed, err := svc.Clear(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 7 {
		t.Errorf("removed = %d, want 7", removed)
	}
}

func TestValidateBatchUsesSnapshot(t *testing.T) {
	repo := &mockRepo{
		reservations: []model.Reservation{{
			ID:        9,
			Venue:     "Great Hall",
			Date:      "2026-06-15",
			StartTime: "09:00",
			EndTime:   "11:00",
		}},
	}
	svc := newTestService(t, repo)

	result := svc.ValidateBatch(context.Background(), []model.BatchRow{
		{RowIndex: 0, Candidate: *validCandidate()},
	})

	r := result.Results[0]
	if len(r.ClashesWithExisting) != 1 || r.ClashesWithExisting[0].ID != 9 {
		t.Errorf("existing clashes = %v, want one with ID 9", r.ClashesWithExisting)
	}
}

// A snapshot failure degrades availability to a fully free report rather
// than an error.
func TestAvailabilityDegradesOnSnapshotFailure(t *testing.T) {
	repo := &mockRepo{findErr: errors.New("mongo down")}
	svc := newTestService(t, repo)

	report, err := svc.Availability(context.Background(), model.AvailabilityRequest{
		Date:          "2026-06-15",
		StartTime:     "09:00",
		EndTime:       "11:00",
		SeatsRequired: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range report.Venues {
		if !v.Available {
			t.Errorf("venue %q unavailable on empty snapshot", v.Name)
		}
	}
}
