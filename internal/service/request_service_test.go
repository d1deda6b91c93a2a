package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/config"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

// Fakes embed the repository interfaces so only the methods a test path
// touches need stubbing. txCounter stands in for the transaction runner:
// each fake records the transaction number its write happened in, so
// tests can tell whether two writes shared a transaction.

type txCounter struct {
	n int
}

type fakeRequestRepo struct {
	repository.RequestRepository
	requests     map[string]*models.ServiceRequest
	tx           *txCounter
	statusWrites []string
	completedIn  int
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.ServiceRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRequestRepo) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error {
	f.requests[id].Status = status
	f.statusWrites = append(f.statusWrites, status)
	return nil
}

func (f *fakeRequestRepo) MarkCompleted(ctx context.Context, tx *sqlx.Tx, id string) error {
	f.requests[id].Status = models.RequestStatusCompleted
	f.completedIn = f.tx.n
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

type fakeTechnicianRepo struct {
	repository.TechnicianRepository
	technicians map[string]*models.Technician
	jobs        map[string]int
}

func (f *fakeTechnicianRepo) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	return f.technicians[id], nil
}

func (f *fakeTechnicianRepo) IncrementCompletedJobs(ctx context.Context, tx *sqlx.Tx, id string) error {
	f.jobs[id]++
	return nil
}

type fakeLoyaltyRepo struct {
	repository.LoyaltyRepository
	appendErr  error
	appended   []*models.PointsTransaction
	tx         *txCounter
	appendedIn int
}

func (f *fakeLoyaltyRepo) Append(ctx context.Context, tx *sqlx.Tx, txn *models.PointsTransaction) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, txn)
	f.appendedIn = f.tx.n
	return nil
}

type requestServiceFakes struct {
	tx             *txCounter
	requestRepo    *fakeRequestRepo
	technicianRepo *fakeTechnicianRepo
	loyaltyRepo    *fakeLoyaltyRepo
}

func newTestRequestService() (*requestService, *requestServiceFakes) {
	techID := "tech-1"
	tx := &txCounter{}
	requestRepo := &fakeRequestRepo{
		requests: map[string]*models.ServiceRequest{
			"req-1": {
				ID:           "req-1",
				UserID:       "owner",
				Status:       models.RequestStatusTechnicianAssigned,
				TechnicianID: &techID,
				TotalHalalas: 45000,
			},
		},
		tx: tx,
	}
	userRepo := &fakeUserRepo{
		users: map[string]*models.User{
			"owner": {ID: "owner", Name: "Owner", Role: models.RoleUser},
		},
	}
	technicianRepo := &fakeTechnicianRepo{
		technicians: map[string]*models.Technician{
			"tech-1": {ID: "tech-1", UserID: "tech-user-1", NameEn: "Ahmed", IsActive: true},
		},
		jobs: map[string]int{},
	}
	loyaltyRepo := &fakeLoyaltyRepo{tx: tx}

	fakes := &requestServiceFakes{
		tx:             tx,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
		loyaltyRepo:    loyaltyRepo,
	}

	svc := &requestService{
		runTx: func(ctx context.Context, fn func(*sqlx.Tx) error) error {
			tx.n++
			return fn(nil)
		},
		cfg:            &config.Config{PointsPerRiyal: 1},
		requestRepo:    requestRepo,
		userRepo:       userRepo,
		technicianRepo: technicianRepo,
		loyaltyRepo:    loyaltyRepo,
		notifier:       noopNotifier{},
	}
	return svc, fakes
}

func TestGetRequestAccess(t *testing.T) {
	svc, _ := newTestRequestService()

	owner := &models.User{ID: "owner", Role: models.RoleUser}
	admin := &models.User{ID: "admin", Role: models.RoleAdmin}
	stranger := &models.User{ID: "stranger", Role: models.RoleUser}
	techUser := &models.User{ID: "tech-user-1", Role: models.RoleUser, UserType: models.UserTypeTechnician}
	assignedTech := &models.Technician{ID: "tech-1", UserID: "tech-user-1"}
	otherTech := &models.Technician{ID: "tech-2", UserID: "tech-user-2"}

	tests := []struct {
		name       string
		user       *models.User
		technician *models.Technician
		wantErr    bool
	}{
		{"owner can read", owner, nil, false},
		{"admin can read", admin, nil, false},
		{"assigned technician can read", techUser, assignedTech, false},
		{"stranger forbidden", stranger, nil, true},
		{"other technician forbidden", techUser, otherTech, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetRequest(context.Background(), tt.user, tt.technician, "req-1")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				apiErr, ok := err.(*apperrors.APIError)
				if !ok || apiErr.StatusCode != 403 {
					t.Errorf("expected 403 APIError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetRequest() error = %v", err)
			}
			if resp.ID != "req-1" {
				t.Errorf("GetRequest() id = %q, want req-1", resp.ID)
			}
		})
	}
}

func TestGetRequestEnrichesParties(t *testing.T) {
	svc, _ := newTestRequestService()
	admin := &models.User{ID: "admin", Role: models.RoleAdmin}

	resp, err := svc.GetRequest(context.Background(), admin, nil, "req-1")
	if err != nil {
		t.Fatalf("GetRequest() error = %v", err)
	}

	if resp.User == nil || resp.User.ID != "owner" {
		t.Error("expected owner attached to the response")
	}
	if resp.Technician == nil || resp.Technician.ID != "tech-1" {
		t.Error("expected assigned technician attached to the response")
	}
}

func TestGetRequestNotFound(t *testing.T) {
	svc, _ := newTestRequestService()
	admin := &models.User{ID: "admin", Role: models.RoleAdmin}

	_, err := svc.GetRequest(context.Background(), admin, nil, "missing")
	apiErr, ok := err.(*apperrors.APIError)
	if !ok || apiErr.StatusCode != 404 {
		t.Errorf("expected 404 APIError, got %v", err)
	}
}

func TestTechnicianUpdateStatusRestrictedStates(t *testing.T) {
	svc, _ := newTestRequestService()
	technician := &models.Technician{ID: "tech-1"}

	// Only in_progress and completed are reachable through the technician
	// path; everything else is rejected before any database work.
	for _, status := range []string{
		models.RequestStatusPending,
		models.RequestStatusConfirmed,
		models.RequestStatusTechnicianAssigned,
		models.RequestStatusCancelled,
		"garbage",
	} {
		err := svc.TechnicianUpdateStatus(context.Background(), technician, "req-1", status)
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 400 {
			t.Errorf("TechnicianUpdateStatus(%q) error = %v, want 400 APIError", status, err)
		}
	}
}

func TestTechnicianUpdateStatusWrongTechnician(t *testing.T) {
	svc, fakes := newTestRequestService()
	fakes.requestRepo.requests["req-1"].Status = models.RequestStatusInProgress
	intruder := &models.Technician{ID: "tech-2", UserID: "tech-user-2"}

	err := svc.TechnicianUpdateStatus(context.Background(), intruder, "req-1", models.RequestStatusCompleted)

	apiErr, ok := err.(*apperrors.APIError)
	if !ok || apiErr.StatusCode != 403 || apiErr.Code != "not_assigned" {
		t.Fatalf("expected 403 not_assigned APIError, got %v", err)
	}
	if got := fakes.requestRepo.requests["req-1"].Status; got != models.RequestStatusInProgress {
		t.Errorf("request status = %q, want in_progress untouched", got)
	}
	if len(fakes.requestRepo.statusWrites) != 0 {
		t.Errorf("unexpected status writes: %v", fakes.requestRepo.statusWrites)
	}
	if fakes.technicianRepo.jobs["tech-2"] != 0 {
		t.Error("completed jobs must not change for the wrong technician")
	}
	if len(fakes.loyaltyRepo.appended) != 0 {
		t.Error("no points may be awarded for a rejected transition")
	}
}

func TestAdminUpdateStatusRejectsAssignment(t *testing.T) {
	svc, fakes := newTestRequestService()
	fakes.requestRepo.requests["req-1"].Status = models.RequestStatusPending
	fakes.requestRepo.requests["req-1"].TechnicianID = nil

	// A bare status write to technician_assigned would leave technician_id
	// and assigned_at empty, stranding the request. Only the assignment
	// endpoint may drive this transition.
	err := svc.AdminUpdateStatus(context.Background(), "req-1", models.RequestStatusTechnicianAssigned)

	apiErr, ok := err.(*apperrors.APIError)
	if !ok || apiErr.StatusCode != 400 {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if got := fakes.requestRepo.requests["req-1"].Status; got != models.RequestStatusPending {
		t.Errorf("request status = %q, want pending untouched", got)
	}
	if fakes.requestRepo.requests["req-1"].TechnicianID != nil {
		t.Error("technician_id must stay unset")
	}
	if fakes.tx.n != 0 {
		t.Errorf("opened %d transactions, want none", fakes.tx.n)
	}
}

func TestCompletionAwardsPointsAfterCommit(t *testing.T) {
	svc, fakes := newTestRequestService()
	fakes.requestRepo.requests["req-1"].Status = models.RequestStatusInProgress
	assigned := &models.Technician{ID: "tech-1", UserID: "tech-user-1"}

	if err := svc.TechnicianUpdateStatus(context.Background(), assigned, "req-1", models.RequestStatusCompleted); err != nil {
		t.Fatalf("TechnicianUpdateStatus() error = %v", err)
	}

	if got := fakes.requestRepo.requests["req-1"].Status; got != models.RequestStatusCompleted {
		t.Errorf("request status = %q, want completed", got)
	}
	if fakes.technicianRepo.jobs["tech-1"] != 1 {
		t.Errorf("completed jobs = %d, want 1", fakes.technicianRepo.jobs["tech-1"])
	}
	if len(fakes.loyaltyRepo.appended) != 1 {
		t.Fatalf("appended %d point transactions, want 1", len(fakes.loyaltyRepo.appended))
	}

	txn := fakes.loyaltyRepo.appended[0]
	if txn.Points != 450 {
		t.Errorf("points = %d, want 450 (45000 halalas at 1 point per riyal)", txn.Points)
	}
	if txn.Kind != models.PointsEarn {
		t.Errorf("kind = %q, want earn", txn.Kind)
	}
	// The award must land in its own transaction, after the completion
	// has committed.
	if fakes.loyaltyRepo.appendedIn <= fakes.requestRepo.completedIn {
		t.Errorf("points written in transaction %d, completion in %d; want the award in a later one",
			fakes.loyaltyRepo.appendedIn, fakes.requestRepo.completedIn)
	}
}

func TestCompletionSurvivesLoyaltyFailure(t *testing.T) {
	svc, fakes := newTestRequestService()
	fakes.requestRepo.requests["req-1"].Status = models.RequestStatusInProgress
	fakes.loyaltyRepo.appendErr = errors.New("points ledger unavailable")
	assigned := &models.Technician{ID: "tech-1", UserID: "tech-user-1"}

	if err := svc.TechnicianUpdateStatus(context.Background(), assigned, "req-1", models.RequestStatusCompleted); err != nil {
		t.Fatalf("TechnicianUpdateStatus() error = %v, want completion to survive a points failure", err)
	}

	if got := fakes.requestRepo.requests["req-1"].Status; got != models.RequestStatusCompleted {
		t.Errorf("request status = %q, want completed", got)
	}
	if fakes.technicianRepo.jobs["tech-1"] != 1 {
		t.Errorf("completed jobs = %d, want 1", fakes.technicianRepo.jobs["tech-1"])
	}
}
