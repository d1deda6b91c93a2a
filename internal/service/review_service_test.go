package service

import (
	"context"
	"testing"

	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type fakeReviewRepo struct {
	repository.ReviewRepository
	byRequest    map[string]*models.Review
	byTechnician map[string][]*models.Review
	created      *models.Review
}

func (f *fakeReviewRepo) GetByRequestID(ctx context.Context, requestID string) (*models.Review, error) {
	return f.byRequest[requestID], nil
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	f.created = review
	f.byRequest[review.RequestID] = review
	f.byTechnician[review.TechnicianID] = append(f.byTechnician[review.TechnicianID], review)
	return nil
}

func (f *fakeReviewRepo) ListByTechnicianID(ctx context.Context, technicianID string) ([]*models.Review, error) {
	return f.byTechnician[technicianID], nil
}

type ratingRecorder struct {
	repository.TechnicianRepository
	lastID     string
	lastRating int
}

func (r *ratingRecorder) UpdateRating(ctx context.Context, id string, rating int) error {
	r.lastID = id
	r.lastRating = rating
	return nil
}

func newTestReviewService(requestStatus string, assigned bool) (*reviewService, *fakeReviewRepo, *ratingRecorder) {
	var techID *string
	if assigned {
		id := "tech-1"
		techID = &id
	}

	requestRepo := &fakeRequestRepo{
		requests: map[string]*models.ServiceRequest{
			"req-1": {
				ID:           "req-1",
				UserID:       "owner",
				Status:       requestStatus,
				TechnicianID: techID,
			},
		},
	}
	reviewRepo := &fakeReviewRepo{
		byRequest:    map[string]*models.Review{},
		byTechnician: map[string][]*models.Review{},
	}
	recorder := &ratingRecorder{}

	svc := &reviewService{
		reviewRepo:     reviewRepo,
		requestRepo:    requestRepo,
		technicianRepo: recorder,
	}
	return svc, reviewRepo, recorder
}

func TestCreateReview(t *testing.T) {
	svc, reviewRepo, recorder := newTestReviewService(models.RequestStatusCompleted, true)
	owner := &models.User{ID: "owner", Role: models.RoleUser}

	review, err := svc.CreateReview(context.Background(), owner, "req-1", &models.CreateReviewRequest{Rating: 4})
	if err != nil {
		t.Fatalf("CreateReview() error = %v", err)
	}
	if review.TechnicianID != "tech-1" {
		t.Errorf("review technician = %q, want tech-1", review.TechnicianID)
	}
	if reviewRepo.created == nil {
		t.Fatal("review was not persisted")
	}
	if recorder.lastRating != 4*models.RatingScale {
		t.Errorf("technician rating = %d, want %d", recorder.lastRating, 4*models.RatingScale)
	}
}

func TestCreateReviewAveragesRatings(t *testing.T) {
	svc, reviewRepo, recorder := newTestReviewService(models.RequestStatusCompleted, true)
	reviewRepo.byTechnician["tech-1"] = []*models.Review{
		{RequestID: "old-1", TechnicianID: "tech-1", Rating: 5},
		{RequestID: "old-2", TechnicianID: "tech-1", Rating: 4},
	}
	owner := &models.User{ID: "owner", Role: models.RoleUser}

	if _, err := svc.CreateReview(context.Background(), owner, "req-1", &models.CreateReviewRequest{Rating: 3}); err != nil {
		t.Fatalf("CreateReview() error = %v", err)
	}

	// (5+4+3)/3 = 4.0 stars stored as 400
	if recorder.lastRating != 400 {
		t.Errorf("technician rating = %d, want 400", recorder.lastRating)
	}
}

func TestCreateReviewRejections(t *testing.T) {
	owner := &models.User{ID: "owner", Role: models.RoleUser}

	t.Run("not the owner", func(t *testing.T) {
		svc, _, _ := newTestReviewService(models.RequestStatusCompleted, true)
		stranger := &models.User{ID: "stranger", Role: models.RoleUser}

		_, err := svc.CreateReview(context.Background(), stranger, "req-1", &models.CreateReviewRequest{Rating: 5})
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 403 {
			t.Errorf("expected 403 APIError, got %v", err)
		}
	})

	t.Run("not completed", func(t *testing.T) {
		svc, _, _ := newTestReviewService(models.RequestStatusInProgress, true)

		_, err := svc.CreateReview(context.Background(), owner, "req-1", &models.CreateReviewRequest{Rating: 5})
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 400 {
			t.Errorf("expected 400 APIError, got %v", err)
		}
	})

	t.Run("no technician", func(t *testing.T) {
		svc, _, _ := newTestReviewService(models.RequestStatusCompleted, false)

		_, err := svc.CreateReview(context.Background(), owner, "req-1", &models.CreateReviewRequest{Rating: 5})
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.StatusCode != 400 {
			t.Errorf("expected 400 APIError, got %v", err)
		}
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc, reviewRepo, _ := newTestReviewService(models.RequestStatusCompleted, true)
		reviewRepo.byRequest["req-1"] = &models.Review{RequestID: "req-1"}

		_, err := svc.CreateReview(context.Background(), owner, "req-1", &models.CreateReviewRequest{Rating: 5})
		apiErr, ok := err.(*apperrors.APIError)
		if !ok || apiErr.Code != "already_reviewed" {
			t.Errorf("expected already_reviewed APIError, got %v", err)
		}
	})
}
