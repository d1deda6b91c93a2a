package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.PaymentReceipt) error
	GetByID(ctx context.Context, id string) (*models.PaymentReceipt, error)
	GetByRequestID(ctx context.Context, requestID string) (*models.PaymentReceipt, error)
	ListPending(ctx context.Context) ([]*models.PaymentReceipt, error)
	// SetStatus runs in the caller's transaction so the verdict and the
	// parent request's payment flag commit together.
	SetStatus(ctx context.Context, tx *sqlx.Tx, id, status, reviewedBy string) error
}

type receiptRepository struct {
	db *sqlx.DB
}

func NewReceiptRepository(db *sqlx.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.PaymentReceipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	receipt.CreatedAt = time.Now()
	receipt.Status = models.ReceiptStatusPending

	query := `
		INSERT INTO payment_receipts (id, request_id, user_id, image_url, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		receipt.ID, receipt.RequestID, receipt.UserID, receipt.ImageURL,
		receipt.Amount, receipt.Status, receipt.CreatedAt)
	return err
}

func (r *receiptRepository) GetByID(ctx context.Context, id string) (*models.PaymentReceipt, error) {
	var receipt models.PaymentReceipt
	query := `SELECT * FROM payment_receipts WHERE id = $1`
	err := r.db.GetContext(ctx, &receipt, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByRequestID(ctx context.Context, requestID string) (*models.PaymentReceipt, error) {
	var receipt models.PaymentReceipt
	query := `SELECT * FROM payment_receipts WHERE request_id = $1`
	err := r.db.GetContext(ctx, &receipt, query, requestID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) ListPending(ctx context.Context) ([]*models.PaymentReceipt, error) {
	var receipts []*models.PaymentReceipt
	query := `SELECT * FROM payment_receipts WHERE status = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &receipts, query, models.ReceiptStatusPending)
	return receipts, err
}

func (r *receiptRepository) SetStatus(ctx context.Context, tx *sqlx.Tx, id, status, reviewedBy string) error {
	query := `UPDATE payment_receipts SET status = $1, reviewed_by = $2, reviewed_at = $3 WHERE id = $4`
	_, err := tx.ExecContext(ctx, query, status, reviewedBy, time.Now(), id)
	return err
}
