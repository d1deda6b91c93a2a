package models

import (
	"time"
)

// Notification kinds
const (
	NotificationRequestCreated   = "request_created"
	NotificationStatusChanged    = "status_changed"
	NotificationTechnicianSet    = "technician_assigned"
	NotificationRequestCompleted = "request_completed"
	NotificationReceiptReviewed  = "receipt_reviewed"
	NotificationNewMessage       = "new_message"
)

// Notification delivery is best-effort: a failed insert is logged and
// swallowed, never surfaced to the caller.
type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	TitleAr   string    `db:"title_ar" json:"title_ar"`
	TitleEn   string    `db:"title_en" json:"title_en"`
	BodyAr    *string   `db:"body_ar" json:"body_ar,omitempty"`
	BodyEn    *string   `db:"body_en" json:"body_en,omitempty"`
	RequestID *string   `db:"request_id" json:"request_id,omitempty"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
