package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	GetByCodeForUpdate(ctx context.Context, tx *sqlx.Tx, code string) (*models.Coupon, error)
	CountUsagesByUser(ctx context.Context, couponID, userID string) (int, error)
	// Redeem appends the usage row and bumps the coupon counter in the
	// caller's transaction, so the ledger and counter cannot diverge.
	Redeem(ctx context.Context, tx *sqlx.Tx, usage *models.CouponUsage) error
}

type couponRepository struct {
	db *sqlx.DB
}

func NewCouponRepository(db *sqlx.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()
	coupon.UsageCount = 0
	coupon.IsActive = true

	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, max_discount_halalas,
			min_order_halalas, usage_limit, usage_count, user_usage_limit, is_active,
			valid_from, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		coupon.ID, coupon.Code, coupon.DiscountType, coupon.DiscountValue,
		coupon.MaxDiscountHalalas, coupon.MinOrderHalalas, coupon.UsageLimit,
		coupon.UsageCount, coupon.UserUsageLimit, coupon.IsActive,
		coupon.ValidFrom, coupon.ValidUntil, coupon.CreatedAt, coupon.UpdatedAt)
	return err
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	query := `SELECT * FROM coupons WHERE code = $1`
	err := r.db.GetContext(ctx, &coupon, query, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &coupon, err
}

func (r *couponRepository) GetByCodeForUpdate(ctx context.Context, tx *sqlx.Tx, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	query := `SELECT * FROM coupons WHERE code = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &coupon, query, code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &coupon, err
}

func (r *couponRepository) CountUsagesByUser(ctx context.Context, couponID, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM coupon_usages WHERE coupon_id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &count, query, couponID, userID)
	return count, err
}

func (r *couponRepository) Redeem(ctx context.Context, tx *sqlx.Tx, usage *models.CouponUsage) error {
	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	usage.CreatedAt = time.Now()

	insertQuery := `
		INSERT INTO coupon_usages (id, coupon_id, user_id, request_id, discount_halalas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, insertQuery,
		usage.ID, usage.CouponID, usage.UserID, usage.RequestID,
		usage.DiscountHalalas, usage.CreatedAt); err != nil {
		return err
	}

	countQuery := `UPDATE coupons SET usage_count = usage_count + 1, updated_at = $1 WHERE id = $2`
	_, err := tx.ExecContext(ctx, countQuery, time.Now(), usage.CouponID)
	return err
}
