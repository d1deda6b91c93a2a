package models

import (
	"time"

	"github.com/lib/pq"
)

// RatingScale is the fixed-point scale for technician ratings.
// A stored rating of 450 means 4.50 stars.
const RatingScale = 100

type Technician struct {
	ID              string         `db:"id" json:"id"`
	UserID          string         `db:"user_id" json:"user_id"`
	NameAr          string         `db:"name_ar" json:"name_ar"`
	NameEn          string         `db:"name_en" json:"name_en"`
	Phone           string         `db:"phone" json:"phone"`
	Specializations pq.StringArray `db:"specializations" json:"specializations"`
	City            string         `db:"city" json:"city"`
	IsActive        bool           `db:"is_active" json:"is_active"`
	CompletedJobs   int            `db:"completed_jobs" json:"completed_jobs"`
	Rating          int            `db:"rating" json:"rating"` // mean review rating x100
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateTechnicianRequest struct {
	UserID          string   `json:"user_id" validate:"required,uuid"`
	NameAr          string   `json:"name_ar" validate:"required,min=2,max=100"`
	NameEn          string   `json:"name_en" validate:"required,min=2,max=100"`
	Phone           string   `json:"phone" validate:"required,min=10,max=15"`
	Specializations []string `json:"specializations" validate:"required,min=1,dive,min=2"`
	City            string   `json:"city" validate:"required,min=2,max=100"`
}

type TechnicianResponse struct {
	ID              string   `json:"id"`
	NameAr          string   `json:"name_ar"`
	NameEn          string   `json:"name_en"`
	Specializations []string `json:"specializations"`
	City            string   `json:"city"`
	IsActive        bool     `json:"is_active"`
	CompletedJobs   int      `json:"completed_jobs"`
	Rating          int      `json:"rating"`
}

func (t *Technician) ToResponse() *TechnicianResponse {
	return &TechnicianResponse{
		ID:              t.ID,
		NameAr:          t.NameAr,
		NameEn:          t.NameEn,
		Specializations: t.Specializations,
		City:            t.City,
		IsActive:        t.IsActive,
		CompletedJobs:   t.CompletedJobs,
		Rating:          t.Rating,
	}
}
