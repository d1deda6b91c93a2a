package models

import (
	"time"
)

// Membership tiers
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Points transaction kinds
const (
	PointsEarn   = "earn"
	PointsRedeem = "redeem"
)

// LoyaltyPoints is the per-user aggregate. AvailablePoints must always
// equal the sum of the user's points transactions.
type LoyaltyPoints struct {
	UserID          string    `db:"user_id" json:"user_id"`
	AvailablePoints int64     `db:"available_points" json:"available_points"`
	LifetimePoints  int64     `db:"lifetime_points" json:"lifetime_points"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// PointsTransaction is the append-only signed ledger: earns positive,
// redemptions negative.
type PointsTransaction struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	RequestID *string   `db:"request_id" json:"request_id,omitempty"`
	Points    int64     `db:"points" json:"points"`
	Kind      string    `db:"kind" json:"kind"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type RedeemPointsRequest struct {
	Points int64 `json:"points" validate:"required,gt=0"`
}

type LoyaltySummary struct {
	AvailablePoints int64  `json:"available_points"`
	LifetimePoints  int64  `json:"lifetime_points"`
	Tier            string `json:"tier"`
}

// TierForPoints derives the membership tier from lifetime points. The tier
// is never stored, so it can never drift from the ledger.
func TierForPoints(lifetime int64) string {
	switch {
	case lifetime < 2000:
		return TierBronze
	case lifetime < 5000:
		return TierSilver
	case lifetime < 10000:
		return TierGold
	default:
		return TierPlatinum
	}
}
