package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/repository"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	Validate(ctx context.Context, userID, code string, orderHalalas int64) (*models.CouponValidationResult, error)
	// RedeemTx validates under a row lock and appends the usage ledger row
	// plus the counter increment in the caller's transaction.
	RedeemTx(ctx context.Context, tx *sqlx.Tx, userID, code string, orderHalalas int64, requestID *string) (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	existing, err := s.couponRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("coupon code already exists")
	}

	coupon := &models.Coupon{
		Code:               req.Code,
		DiscountType:       req.DiscountType,
		DiscountValue:      req.DiscountValue,
		MaxDiscountHalalas: req.MaxDiscountHalalas,
		MinOrderHalalas:    req.MinOrderHalalas,
		UsageLimit:         req.UsageLimit,
		UserUsageLimit:     req.UserUsageLimit,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

func (s *couponService) Validate(ctx context.Context, userID, code string, orderHalalas int64) (*models.CouponValidationResult, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return &models.CouponValidationResult{Valid: false, Message: "coupon not found"}, nil
	}

	userUsages, err := s.couponRepo.CountUsagesByUser(ctx, coupon.ID, userID)
	if err != nil {
		return nil, err
	}

	return Evaluate(coupon, userUsages, orderHalalas, time.Now()), nil
}

func (s *couponService) RedeemTx(ctx context.Context, tx *sqlx.Tx, userID, code string, orderHalalas int64, requestID *string) (int64, error) {
	coupon, err := s.couponRepo.GetByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return 0, err
	}
	if coupon == nil {
		return 0, apperrors.NotFound("coupon")
	}

	userUsages, err := s.couponRepo.CountUsagesByUser(ctx, coupon.ID, userID)
	if err != nil {
		return 0, err
	}

	result := Evaluate(coupon, userUsages, orderHalalas, time.Now())
	if !result.Valid {
		return 0, apperrors.CouponInvalid(result.Message)
	}

	usage := &models.CouponUsage{
		CouponID:        coupon.ID,
		UserID:          userID,
		RequestID:       requestID,
		DiscountHalalas: result.DiscountHalalas,
	}
	if err := s.couponRepo.Redeem(ctx, tx, usage); err != nil {
		return 0, err
	}

	return result.DiscountHalalas, nil
}

// Evaluate applies the coupon rule set to an order. It is a pure function
// of the coupon row, the caller's prior usage count, the order amount and
// the current time.
func Evaluate(coupon *models.Coupon, userUsages int, orderHalalas int64, now time.Time) *models.CouponValidationResult {
	invalid := func(msg string) *models.CouponValidationResult {
		return &models.CouponValidationResult{Valid: false, Message: msg}
	}

	if !coupon.IsActive {
		return invalid("coupon is not active")
	}
	if now.Before(coupon.ValidFrom) {
		return invalid("coupon is not valid yet")
	}
	if now.After(coupon.ValidUntil) {
		return invalid("coupon has expired")
	}
	if coupon.UsageCount >= coupon.UsageLimit {
		return invalid("coupon usage limit reached")
	}
	if orderHalalas < coupon.MinOrderHalalas {
		return invalid("order amount is below the coupon minimum")
	}
	if userUsages >= coupon.UserUsageLimit {
		return invalid("you have already used this coupon")
	}

	return &models.CouponValidationResult{
		Valid:           true,
		DiscountHalalas: Discount(coupon, orderHalalas),
	}
}

// Discount computes the discount amount in halalas. Percentage coupons are
// floored and capped at max_discount_halalas when set; fixed coupons are a
// flat value, never exceeding the order amount.
func Discount(coupon *models.Coupon, orderHalalas int64) int64 {
	var discount int64
	switch coupon.DiscountType {
	case models.CouponTypePercentage:
		discount = orderHalalas * coupon.DiscountValue / 100
		if coupon.MaxDiscountHalalas != nil && discount > *coupon.MaxDiscountHalalas {
			discount = *coupon.MaxDiscountHalalas
		}
	case models.CouponTypeFixed:
		discount = coupon.DiscountValue
	}

	if discount > orderHalalas {
		discount = orderHalalas
	}
	return discount
}
