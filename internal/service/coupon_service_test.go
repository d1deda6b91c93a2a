package service

import (
	"testing"
	"time"

	"github.com/repairlink/repairlink/internal/models"
)

func activeCoupon() *models.Coupon {
	return &models.Coupon{
		ID:              "c1",
		Code:            "SAVE10",
		DiscountType:    models.CouponTypePercentage,
		DiscountValue:   10,
		MinOrderHalalas: 10000,
		UsageLimit:      100,
		UserUsageLimit:  1,
		IsActive:        true,
		ValidFrom:       time.Now().Add(-time.Hour),
		ValidUntil:      time.Now().Add(time.Hour),
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		mutate       func(c *models.Coupon)
		userUsages   int
		orderHalalas int64
		wantValid    bool
	}{
		{
			name:         "valid coupon",
			mutate:       func(c *models.Coupon) {},
			orderHalalas: 20000,
			wantValid:    true,
		},
		{
			name:         "inactive",
			mutate:       func(c *models.Coupon) { c.IsActive = false },
			orderHalalas: 20000,
			wantValid:    false,
		},
		{
			name:         "not yet valid",
			mutate:       func(c *models.Coupon) { c.ValidFrom = now.Add(time.Hour) },
			orderHalalas: 20000,
			wantValid:    false,
		},
		{
			name:         "expired",
			mutate:       func(c *models.Coupon) { c.ValidUntil = now.Add(-time.Minute) },
			orderHalalas: 20000,
			wantValid:    false,
		},
		{
			name:         "global limit reached",
			mutate:       func(c *models.Coupon) { c.UsageCount = c.UsageLimit },
			orderHalalas: 20000,
			wantValid:    false,
		},
		{
			name:         "order below minimum",
			mutate:       func(c *models.Coupon) {},
			orderHalalas: 9999,
			wantValid:    false,
		},
		{
			name:         "user limit reached",
			mutate:       func(c *models.Coupon) {},
			userUsages:   1,
			orderHalalas: 20000,
			wantValid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon()
			tt.mutate(coupon)

			result := Evaluate(coupon, tt.userUsages, tt.orderHalalas, now)
			if result.Valid != tt.wantValid {
				t.Errorf("Evaluate() valid = %v, want %v (message: %s)", result.Valid, tt.wantValid, result.Message)
			}
			if !result.Valid && result.Message == "" {
				t.Error("invalid result should carry a message")
			}
		})
	}
}

func TestDiscount(t *testing.T) {
	cap5000 := int64(5000)

	tests := []struct {
		name         string
		coupon       *models.Coupon
		orderHalalas int64
		want         int64
	}{
		{
			name: "percentage",
			coupon: &models.Coupon{
				DiscountType:  models.CouponTypePercentage,
				DiscountValue: 10,
			},
			orderHalalas: 20000,
			want:         2000,
		},
		{
			name: "percentage floors",
			coupon: &models.Coupon{
				DiscountType:  models.CouponTypePercentage,
				DiscountValue: 15,
			},
			orderHalalas: 999,
			want:         149, // 999*15/100 = 149.85 floored
		},
		{
			name: "percentage capped",
			coupon: &models.Coupon{
				DiscountType:       models.CouponTypePercentage,
				DiscountValue:      50,
				MaxDiscountHalalas: &cap5000,
			},
			orderHalalas: 100000,
			want:         5000,
		},
		{
			name: "fixed",
			coupon: &models.Coupon{
				DiscountType:  models.CouponTypeFixed,
				DiscountValue: 3000,
			},
			orderHalalas: 20000,
			want:         3000,
		},
		{
			name: "fixed never exceeds order",
			coupon: &models.Coupon{
				DiscountType:  models.CouponTypeFixed,
				DiscountValue: 30000,
			},
			orderHalalas: 20000,
			want:         20000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Discount(tt.coupon, tt.orderHalalas); got != tt.want {
				t.Errorf("Discount() = %d, want %d", got, tt.want)
			}
		})
	}
}
