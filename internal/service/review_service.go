package service

import (
	"context"

	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, user *models.User, requestID string, req *models.CreateReviewRequest) (*models.Review, error)
	GetByRequestID(ctx context.Context, requestID string) (*models.Review, error)
	RespondToReview(ctx context.Context, technician *models.Technician, requestID string, req *models.ReviewResponseRequest) error
}

type reviewService struct {
	reviewRepo     repository.ReviewRepository
	requestRepo    repository.RequestRepository
	technicianRepo repository.TechnicianRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, requestRepo repository.RequestRepository, technicianRepo repository.TechnicianRepository) ReviewService {
	return &reviewService{
		reviewRepo:     reviewRepo,
		requestRepo:    requestRepo,
		technicianRepo: technicianRepo,
	}
}

// CreateReview writes the one review a completed request may carry, then
// recomputes the technician's mean rating over all their reviews.
func (s *reviewService) CreateReview(ctx context.Context, user *models.User, requestID string, req *models.CreateReviewRequest) (*models.Review, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("request")
	}
	if request.UserID != user.ID {
		return nil, apperrors.Forbidden("only the request owner may review it")
	}
	if request.Status != models.RequestStatusCompleted {
		return nil, apperrors.BadRequest("only completed requests can be reviewed")
	}
	if request.TechnicianID == nil {
		return nil, apperrors.BadRequest("request has no technician to review")
	}

	existing, err := s.reviewRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.AlreadyReviewed()
	}

	review := &models.Review{
		RequestID:    requestID,
		UserID:       user.ID,
		TechnicianID: *request.TechnicianID,
		Rating:       req.Rating,
	}
	if req.ReviewText != "" {
		review.ReviewText = &req.ReviewText
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshRating(ctx, review.TechnicianID); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) GetByRequestID(ctx context.Context, requestID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperrors.NotFound("review")
	}
	return review, nil
}

func (s *reviewService) RespondToReview(ctx context.Context, technician *models.Technician, requestID string, req *models.ReviewResponseRequest) error {
	review, err := s.reviewRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperrors.NotFound("review")
	}
	if review.TechnicianID != technician.ID {
		return apperrors.Forbidden("this review is not about you")
	}
	if review.Response != nil {
		return apperrors.Conflict("review already has a response")
	}

	return s.reviewRepo.SetResponse(ctx, review.ID, req.Response)
}

// refreshRating stores the mean of all the technician's review ratings
// scaled by RatingScale, so 4.5 stars persists as 450.
func (s *reviewService) refreshRating(ctx context.Context, technicianID string) error {
	reviews, err := s.reviewRepo.ListByTechnicianID(ctx, technicianID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	rating := sum * models.RatingScale / len(reviews)

	return s.technicianRepo.UpdateRating(ctx, technicianID, rating)
}
