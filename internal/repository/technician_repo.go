package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type TechnicianRepository interface {
	Create(ctx context.Context, technician *models.Technician) error
	GetByID(ctx context.Context, id string) (*models.Technician, error)
	GetByUserID(ctx context.Context, userID string) (*models.Technician, error)
	ListActive(ctx context.Context, city string) ([]*models.Technician, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdateRating(ctx context.Context, id string, rating int) error
	IncrementCompletedJobs(ctx context.Context, tx *sqlx.Tx, id string) error
}

type technicianRepository struct {
	db *sqlx.DB
}

func NewTechnicianRepository(db *sqlx.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) Create(ctx context.Context, technician *models.Technician) error {
	if technician.ID == "" {
		technician.ID = uuid.New().String()
	}
	technician.CreatedAt = time.Now()
	technician.UpdatedAt = time.Now()
	technician.IsActive = true
	technician.CompletedJobs = 0
	technician.Rating = 0

	query := `
		INSERT INTO technicians (id, user_id, name_ar, name_en, phone, specializations,
			city, is_active, completed_jobs, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		technician.ID, technician.UserID, technician.NameAr, technician.NameEn,
		technician.Phone, technician.Specializations, technician.City,
		technician.IsActive, technician.CompletedJobs, technician.Rating,
		technician.CreatedAt, technician.UpdatedAt)
	return err
}

func (r *technicianRepository) GetByID(ctx context.Context, id string) (*models.Technician, error) {
	var technician models.Technician
	query := `SELECT * FROM technicians WHERE id = $1`
	err := r.db.GetContext(ctx, &technician, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &technician, err
}

func (r *technicianRepository) GetByUserID(ctx context.Context, userID string) (*models.Technician, error) {
	var technician models.Technician
	query := `SELECT * FROM technicians WHERE user_id = $1`
	err := r.db.GetContext(ctx, &technician, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &technician, err
}

func (r *technicianRepository) ListActive(ctx context.Context, city string) ([]*models.Technician, error) {
	var technicians []*models.Technician
	if city != "" {
		query := `SELECT * FROM technicians WHERE is_active = true AND city = $1 ORDER BY rating DESC`
		err := r.db.SelectContext(ctx, &technicians, query, city)
		return technicians, err
	}
	query := `SELECT * FROM technicians WHERE is_active = true ORDER BY rating DESC`
	err := r.db.SelectContext(ctx, &technicians, query)
	return technicians, err
}

func (r *technicianRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE technicians SET is_active = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, active, time.Now(), id)
	return err
}

func (r *technicianRepository) UpdateRating(ctx context.Context, id string, rating int) error {
	query := `UPDATE technicians SET rating = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, rating, time.Now(), id)
	return err
}

// IncrementCompletedJobs runs inside the completion transaction so the
// counter and the status write land together.
func (r *technicianRepository) IncrementCompletedJobs(ctx context.Context, tx *sqlx.Tx, id string) error {
	query := `UPDATE technicians SET completed_jobs = completed_jobs + 1, updated_at = $1 WHERE id = $2`
	_, err := tx.ExecContext(ctx, query, time.Now(), id)
	return err
}
