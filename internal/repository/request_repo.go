package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type RequestRepository interface {
	// Create runs in the caller's transaction so coupon redemption and the
	// request insert land atomically.
	Create(ctx context.Context, tx *sqlx.Tx, request *models.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.ServiceRequest, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.ServiceRequest, error)
	ListByTechnicianID(ctx context.Context, technicianID string) ([]*models.ServiceRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*models.ServiceRequest, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error
	UpdateTotal(ctx context.Context, tx *sqlx.Tx, id string, totalHalalas int64) error
	AssignTechnician(ctx context.Context, tx *sqlx.Tx, requestID, technicianID string) error
	MarkCompleted(ctx context.Context, tx *sqlx.Tx, id string) error
	UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, id, paymentStatus string) error
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, tx *sqlx.Tx, request *models.ServiceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	request.Status = models.RequestStatusPending
	if request.PaymentStatus == "" {
		request.PaymentStatus = models.PaymentStatusUnpaid
	}
	if request.Country == "" {
		request.Country = "SA"
	}

	query := `
		INSERT INTO service_requests (id, user_id, device_model_id, service_type_id, pricing_id,
			service_mode, issue_description, address, city, country, phone_number,
			preferred_date, preferred_slot, status, total_halalas, payment_method,
			payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := tx.ExecContext(ctx, query,
		request.ID, request.UserID, request.DeviceModelID, request.ServiceTypeID, request.PricingID,
		request.ServiceMode, request.IssueDescription, request.Address, request.City, request.Country,
		request.PhoneNumber, request.PreferredDate, request.PreferredSlot, request.Status,
		request.TotalHalalas, request.PaymentMethod, request.PaymentStatus,
		request.CreatedAt, request.UpdatedAt)
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	query := `SELECT * FROM service_requests WHERE id = $1`
	err := r.db.GetContext(ctx, &request, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &request, err
}

// GetByIDForUpdate takes a row lock so concurrent transitions serialize.
func (r *requestRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	query := `SELECT * FROM service_requests WHERE id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &request, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &request, err
}

func (r *requestRepository) ListByUserID(ctx context.Context, userID string) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	query := `SELECT * FROM service_requests WHERE user_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, userID)
	return requests, err
}

func (r *requestRepository) ListByTechnicianID(ctx context.Context, technicianID string) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	query := `SELECT * FROM service_requests WHERE technician_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, technicianID)
	return requests, err
}

func (r *requestRepository) ListByStatus(ctx context.Context, status string) ([]*models.ServiceRequest, error) {
	var requests []*models.ServiceRequest
	if status != "" {
		query := `SELECT * FROM service_requests WHERE status = $1 ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &requests, query, status)
		return requests, err
	}
	query := `SELECT * FROM service_requests ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query)
	return requests, err
}

func (r *requestRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error {
	query := `UPDATE service_requests SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := tx.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *requestRepository) UpdateTotal(ctx context.Context, tx *sqlx.Tx, id string, totalHalalas int64) error {
	query := `UPDATE service_requests SET total_halalas = $1, updated_at = $2 WHERE id = $3`
	_, err := tx.ExecContext(ctx, query, totalHalalas, time.Now(), id)
	return err
}

func (r *requestRepository) AssignTechnician(ctx context.Context, tx *sqlx.Tx, requestID, technicianID string) error {
	now := time.Now()
	query := `
		UPDATE service_requests
		SET technician_id = $1, assigned_at = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	_, err := tx.ExecContext(ctx, query,
		technicianID, now, models.RequestStatusTechnicianAssigned, now, requestID)
	return err
}

func (r *requestRepository) MarkCompleted(ctx context.Context, tx *sqlx.Tx, id string) error {
	now := time.Now()
	query := `
		UPDATE service_requests
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id = $4
	`
	_, err := tx.ExecContext(ctx, query, models.RequestStatusCompleted, now, now, id)
	return err
}

func (r *requestRepository) UpdatePaymentStatusTx(ctx context.Context, tx *sqlx.Tx, id, paymentStatus string) error {
	query := `UPDATE service_requests SET payment_status = $1, updated_at = $2 WHERE id = $3`
	_, err := tx.ExecContext(ctx, query, paymentStatus, time.Now(), id)
	return err
}
