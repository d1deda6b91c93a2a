package service

import (
	"context"

	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type TechnicianService interface {
	CreateTechnician(ctx context.Context, req *models.CreateTechnicianRequest) (*models.Technician, error)
	GetTechnician(ctx context.Context, id string) (*models.Technician, error)
	ListActive(ctx context.Context, city string) ([]*models.Technician, error)
	SetActive(ctx context.Context, id string, active bool) error
	ListReviews(ctx context.Context, technicianID string) ([]*models.Review, error)
}

type technicianService struct {
	technicianRepo repository.TechnicianRepository
	userRepo       repository.UserRepository
	reviewRepo     repository.ReviewRepository
}

func NewTechnicianService(technicianRepo repository.TechnicianRepository, userRepo repository.UserRepository, reviewRepo repository.ReviewRepository) TechnicianService {
	return &technicianService{
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		reviewRepo:     reviewRepo,
	}
}

// CreateTechnician promotes an existing user account into a technician
// profile. The user keeps their login; user_type flips so new sessions
// carry the technician identity.
func (s *technicianService) CreateTechnician(ctx context.Context, req *models.CreateTechnicianRequest) (*models.Technician, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user")
	}

	existing, err := s.technicianRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("user already has a technician profile")
	}

	technician := &models.Technician{
		UserID:          req.UserID,
		NameAr:          req.NameAr,
		NameEn:          req.NameEn,
		Phone:           req.Phone,
		Specializations: req.Specializations,
		City:            req.City,
	}

	if err := s.technicianRepo.Create(ctx, technician); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateUserType(ctx, req.UserID, models.UserTypeTechnician); err != nil {
		return nil, err
	}

	return technician, nil
}

func (s *technicianService) GetTechnician(ctx context.Context, id string) (*models.Technician, error) {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, apperrors.NotFound("technician")
	}
	return technician, nil
}

func (s *technicianService) ListActive(ctx context.Context, city string) ([]*models.Technician, error) {
	return s.technicianRepo.ListActive(ctx, city)
}

func (s *technicianService) SetActive(ctx context.Context, id string, active bool) error {
	technician, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if technician == nil {
		return apperrors.NotFound("technician")
	}
	return s.technicianRepo.SetActive(ctx, id, active)
}

func (s *technicianService) ListReviews(ctx context.Context, technicianID string) ([]*models.Review, error) {
	return s.reviewRepo.ListByTechnicianID(ctx, technicianID)
}
