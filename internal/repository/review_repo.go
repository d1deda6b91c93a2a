package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByRequestID(ctx context.Context, requestID string) (*models.Review, error)
	ListByTechnicianID(ctx context.Context, technicianID string) ([]*models.Review, error)
	SetResponse(ctx context.Context, id, response string) error
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()

	query := `
		INSERT INTO reviews (id, request_id, user_id, technician_id, rating, review_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.RequestID, review.UserID, review.TechnicianID,
		review.Rating, review.ReviewText, review.CreatedAt)
	return err
}

func (r *reviewRepository) GetByRequestID(ctx context.Context, requestID string) (*models.Review, error) {
	var review models.Review
	query := `SELECT * FROM reviews WHERE request_id = $1`
	err := r.db.GetContext(ctx, &review, query, requestID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &review, err
}

func (r *reviewRepository) ListByTechnicianID(ctx context.Context, technicianID string) ([]*models.Review, error) {
	var reviews []*models.Review
	query := `SELECT * FROM reviews WHERE technician_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &reviews, query, technicianID)
	return reviews, err
}

func (r *reviewRepository) SetResponse(ctx context.Context, id, response string) error {
	query := `UPDATE reviews SET response = $1, responded_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, response, time.Now(), id)
	return err
}
