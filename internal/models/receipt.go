package models

import (
	"time"
)

// Receipt status constants
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusApproved = "approved"
	ReceiptStatusRejected = "rejected"
)

// PaymentReceipt backs bank-transfer payments: the user uploads proof once,
// an admin approves or rejects it. Approval is the only path that marks the
// parent request as paid.
type PaymentReceipt struct {
	ID         string     `db:"id" json:"id"`
	RequestID  string     `db:"request_id" json:"request_id"`
	UserID     string     `db:"user_id" json:"user_id"`
	ImageURL   string     `db:"image_url" json:"image_url"`
	Amount     int64      `db:"amount" json:"amount"`
	Status     string     `db:"status" json:"status"`
	ReviewedBy *string    `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

type UploadReceiptRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=1000"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}
