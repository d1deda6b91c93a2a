package service

import (
	"context"

	"github.com/repairlink/repairlink/internal/auth"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, user *models.User, req *models.UpdateProfileRequest) (*models.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	technicianRepo repository.TechnicianRepository
	sessions       *auth.Manager
}

func NewAuthService(userRepo repository.UserRepository, technicianRepo repository.TechnicianRepository, sessions *auth.Manager) AuthService {
	return &authService{
		userRepo:       userRepo,
		technicianRepo: technicianRepo,
		sessions:       sessions,
	}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, string, error) {
	existing, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.Conflict("phone number is already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Phone:        req.Phone,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, "", err
	}
	// Same error whether the phone or the password was wrong.
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", apperrors.Unauthorized("invalid phone or password")
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *authService) UpdateProfile(ctx context.Context, user *models.User, req *models.UpdateProfileRequest) (*models.User, error) {
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) issueSession(ctx context.Context, user *models.User) (string, error) {
	sess := &auth.Session{
		UserID: user.ID,
		Role:   user.Role,
	}

	if user.UserType == models.UserTypeTechnician {
		technician, err := s.technicianRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if technician != nil {
			sess.TechnicianID = technician.ID
		}
	}

	return s.sessions.Create(ctx, sess)
}
