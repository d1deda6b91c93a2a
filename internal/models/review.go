package models

import (
	"time"
)

// Review is written once by the request owner after completion. The only
// mutation allowed afterwards is the technician's response text.
type Review struct {
	ID           string     `db:"id" json:"id"`
	RequestID    string     `db:"request_id" json:"request_id"`
	UserID       string     `db:"user_id" json:"user_id"`
	TechnicianID string     `db:"technician_id" json:"technician_id"`
	Rating       int        `db:"rating" json:"rating"` // 1..5
	ReviewText   *string    `db:"review_text" json:"review_text,omitempty"`
	Response     *string    `db:"response" json:"response,omitempty"`
	RespondedAt  *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text,omitempty" validate:"omitempty,max=2000"`
}

type ReviewResponseRequest struct {
	Response string `json:"response" validate:"required,min=1,max=2000"`
}
