package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type LoyaltyRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.LoyaltyPoints, error)
	GetByUserIDForUpdate(ctx context.Context, tx *sqlx.Tx, userID string) (*models.LoyaltyPoints, error)
	// Append writes the signed transaction and adjusts the aggregate inside
	// the caller's transaction. Earns also raise lifetime points.
	Append(ctx context.Context, tx *sqlx.Tx, txn *models.PointsTransaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]*models.PointsTransaction, error)
}

type loyaltyRepository struct {
	db *sqlx.DB
}

func NewLoyaltyRepository(db *sqlx.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) GetByUserID(ctx context.Context, userID string) (*models.LoyaltyPoints, error) {
	var lp models.LoyaltyPoints
	query := `SELECT * FROM loyalty_points WHERE user_id = $1`
	err := r.db.GetContext(ctx, &lp, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &lp, err
}

func (r *loyaltyRepository) GetByUserIDForUpdate(ctx context.Context, tx *sqlx.Tx, userID string) (*models.LoyaltyPoints, error) {
	var lp models.LoyaltyPoints
	query := `SELECT * FROM loyalty_points WHERE user_id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &lp, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &lp, err
}

func (r *loyaltyRepository) Append(ctx context.Context, tx *sqlx.Tx, txn *models.PointsTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()

	insertQuery := `
		INSERT INTO points_transactions (id, user_id, request_id, points, kind, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, insertQuery,
		txn.ID, txn.UserID, txn.RequestID, txn.Points, txn.Kind, txn.Note, txn.CreatedAt); err != nil {
		return err
	}

	lifetimeDelta := int64(0)
	if txn.Points > 0 {
		lifetimeDelta = txn.Points
	}

	upsertQuery := `
		INSERT INTO loyalty_points (user_id, available_points, lifetime_points, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET available_points = loyalty_points.available_points + $2,
			lifetime_points = loyalty_points.lifetime_points + $3,
			updated_at = $4
	`
	_, err := tx.ExecContext(ctx, upsertQuery, txn.UserID, txn.Points, lifetimeDelta, time.Now())
	return err
}

func (r *loyaltyRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*models.PointsTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var txns []*models.PointsTransaction
	query := `SELECT * FROM points_transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	err := r.db.SelectContext(ctx, &txns, query, userID, limit)
	return txns, err
}
