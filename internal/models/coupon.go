package models

import (
	"time"
)

// Coupon discount types
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

type Coupon struct {
	ID                 string    `db:"id" json:"id"`
	Code               string    `db:"code" json:"code"`
	DiscountType       string    `db:"discount_type" json:"discount_type"`
	DiscountValue      int64     `db:"discount_value" json:"discount_value"` // percent for percentage, halalas for fixed
	MaxDiscountHalalas *int64    `db:"max_discount_halalas" json:"max_discount_halalas,omitempty"`
	MinOrderHalalas    int64     `db:"min_order_halalas" json:"min_order_halalas"`
	UsageLimit         int       `db:"usage_limit" json:"usage_limit"`
	UsageCount         int       `db:"usage_count" json:"usage_count"`
	UserUsageLimit     int       `db:"user_usage_limit" json:"user_usage_limit"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	ValidFrom          time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil         time.Time `db:"valid_until" json:"valid_until"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// CouponUsage is the append-only redemption ledger. The per-user cap is
// enforced by counting these rows, the global cap by the coupon counter
// incremented in the same transaction.
type CouponUsage struct {
	ID              string    `db:"id" json:"id"`
	CouponID        string    `db:"coupon_id" json:"coupon_id"`
	UserID          string    `db:"user_id" json:"user_id"`
	RequestID       *string   `db:"request_id" json:"request_id,omitempty"`
	DiscountHalalas int64     `db:"discount_halalas" json:"discount_halalas"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreateCouponRequest struct {
	Code               string    `json:"code" validate:"required,min=3,max=32,alphanum"`
	DiscountType       string    `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue      int64     `json:"discount_value" validate:"required,gt=0"`
	MaxDiscountHalalas *int64    `json:"max_discount_halalas,omitempty" validate:"omitempty,gt=0"`
	MinOrderHalalas    int64     `json:"min_order_halalas" validate:"gte=0"`
	UsageLimit         int       `json:"usage_limit" validate:"required,gt=0"`
	UserUsageLimit     int       `json:"user_usage_limit" validate:"required,gt=0"`
	ValidFrom          time.Time `json:"valid_from" validate:"required"`
	ValidUntil         time.Time `json:"valid_until" validate:"required,gtfield=ValidFrom"`
}

type ValidateCouponRequest struct {
	Code         string `json:"code" validate:"required,min=3,max=32"`
	OrderHalalas int64  `json:"order_halalas" validate:"required,gt=0"`
}

type CouponValidationResult struct {
	Valid           bool   `json:"valid"`
	DiscountHalalas int64  `json:"discount_halalas,omitempty"`
	Message         string `json:"message,omitempty"`
}
