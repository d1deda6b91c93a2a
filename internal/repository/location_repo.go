package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

// LocationRepository is an append-only time series: the current location is
// the latest row, history is never rewritten.
type LocationRepository interface {
	Append(ctx context.Context, loc *models.TechnicianLocation) error
	GetLatestByTechnicianID(ctx context.Context, technicianID string) (*models.TechnicianLocation, error)
	GetLatestByRequestID(ctx context.Context, requestID string) (*models.TechnicianLocation, error)
}

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Append(ctx context.Context, loc *models.TechnicianLocation) error {
	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}
	loc.CreatedAt = time.Now()

	query := `
		INSERT INTO technician_locations (id, technician_id, request_id, lat, lng, speed, heading, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		loc.ID, loc.TechnicianID, loc.RequestID, loc.Lat, loc.Lng,
		loc.Speed, loc.Heading, loc.CreatedAt)
	return err
}

func (r *locationRepository) GetLatestByTechnicianID(ctx context.Context, technicianID string) (*models.TechnicianLocation, error) {
	var loc models.TechnicianLocation
	query := `SELECT * FROM technician_locations WHERE technician_id = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.GetContext(ctx, &loc, query, technicianID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &loc, err
}

func (r *locationRepository) GetLatestByRequestID(ctx context.Context, requestID string) (*models.TechnicianLocation, error) {
	var loc models.TechnicianLocation
	query := `SELECT * FROM technician_locations WHERE request_id = $1 ORDER BY created_at DESC LIMIT 1`
	err := r.db.GetContext(ctx, &loc, query, requestID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &loc, err
}
