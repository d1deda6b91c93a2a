package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type LoyaltyService interface {
	GetSummary(ctx context.Context, userID string) (*models.LoyaltySummary, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]*models.PointsTransaction, error)
	Redeem(ctx context.Context, userID string, points int64) (*models.LoyaltySummary, error)
}

type loyaltyService struct {
	db          *sqlx.DB
	loyaltyRepo repository.LoyaltyRepository
}

func NewLoyaltyService(db *sqlx.DB, loyaltyRepo repository.LoyaltyRepository) LoyaltyService {
	return &loyaltyService{db: db, loyaltyRepo: loyaltyRepo}
}

func (s *loyaltyService) GetSummary(ctx context.Context, userID string) (*models.LoyaltySummary, error) {
	lp, err := s.loyaltyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Users with no ledger rows simply start at zero.
	if lp == nil {
		lp = &models.LoyaltyPoints{UserID: userID}
	}

	return &models.LoyaltySummary{
		AvailablePoints: lp.AvailablePoints,
		LifetimePoints:  lp.LifetimePoints,
		Tier:            models.TierForPoints(lp.LifetimePoints),
	}, nil
}

func (s *loyaltyService) ListTransactions(ctx context.Context, userID string, limit int) ([]*models.PointsTransaction, error) {
	return s.loyaltyRepo.ListTransactions(ctx, userID, limit)
}

// Redeem burns points under a row lock so two concurrent redemptions
// cannot both spend the same balance.
func (s *loyaltyService) Redeem(ctx context.Context, userID string, points int64) (*models.LoyaltySummary, error) {
	if points <= 0 {
		return nil, apperrors.BadRequest("points must be positive")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lp, err := s.loyaltyRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if lp == nil || lp.AvailablePoints < points {
		return nil, apperrors.InsufficientPoints()
	}

	note := "points redemption"
	txn := &models.PointsTransaction{
		UserID: userID,
		Points: -points,
		Kind:   models.PointsRedeem,
		Note:   &note,
	}
	if err := s.loyaltyRepo.Append(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.LoyaltySummary{
		AvailablePoints: lp.AvailablePoints - points,
		LifetimePoints:  lp.LifetimePoints,
		Tier:            models.TierForPoints(lp.LifetimePoints),
	}, nil
}
