package models

import (
	"time"
)

// TechnicianLocation is an append-only time series; the current location is
// the most recent row (or the cached fix in front of it), never an update
// in place.
type TechnicianLocation struct {
	ID           string    `db:"id" json:"id"`
	TechnicianID string    `db:"technician_id" json:"technician_id"`
	RequestID    *string   `db:"request_id" json:"request_id,omitempty"`
	Lat          float64   `db:"lat" json:"lat"`
	Lng          float64   `db:"lng" json:"lng"`
	Speed        *float64  `db:"speed" json:"speed,omitempty"`
	Heading      *float64  `db:"heading" json:"heading,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type UpdateLocationRequest struct {
	RequestID string   `json:"request_id,omitempty" validate:"omitempty,uuid"`
	Lat       float64  `json:"lat" validate:"required,latitude"`
	Lng       float64  `json:"lng" validate:"required,longitude"`
	Speed     *float64 `json:"speed,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
}
