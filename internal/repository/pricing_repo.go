package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

type PricingRepository interface {
	// GetByPair returns the unique pricing row for (device model, service
	// type), or nil when the service is not offered for that model.
	GetByPair(ctx context.Context, deviceModelID, serviceTypeID string) (*models.ServicePricing, error)
	GetByID(ctx context.Context, id string) (*models.ServicePricing, error)
	ListByDeviceModel(ctx context.Context, deviceModelID string) ([]*models.ServicePricing, error)
	Create(ctx context.Context, pricing *models.ServicePricing) error
	UpdatePrice(ctx context.Context, id string, priceHalalas int64, warrantyDays int) error
}

type pricingRepository struct {
	db *sqlx.DB
}

func NewPricingRepository(db *sqlx.DB) PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) GetByPair(ctx context.Context, deviceModelID, serviceTypeID string) (*models.ServicePricing, error) {
	var pricing models.ServicePricing
	query := `SELECT * FROM service_pricing WHERE device_model_id = $1 AND service_type_id = $2`
	err := r.db.GetContext(ctx, &pricing, query, deviceModelID, serviceTypeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &pricing, err
}

func (r *pricingRepository) GetByID(ctx context.Context, id string) (*models.ServicePricing, error) {
	var pricing models.ServicePricing
	query := `SELECT * FROM service_pricing WHERE id = $1`
	err := r.db.GetContext(ctx, &pricing, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &pricing, err
}

func (r *pricingRepository) ListByDeviceModel(ctx context.Context, deviceModelID string) ([]*models.ServicePricing, error) {
	var rows []*models.ServicePricing
	query := `SELECT * FROM service_pricing WHERE device_model_id = $1`
	err := r.db.SelectContext(ctx, &rows, query, deviceModelID)
	return rows, err
}

func (r *pricingRepository) Create(ctx context.Context, pricing *models.ServicePricing) error {
	if pricing.ID == "" {
		pricing.ID = uuid.New().String()
	}
	pricing.CreatedAt = time.Now()
	pricing.UpdatedAt = time.Now()

	query := `
		INSERT INTO service_pricing (id, device_model_id, service_type_id, price_halalas, warranty_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		pricing.ID, pricing.DeviceModelID, pricing.ServiceTypeID,
		pricing.PriceHalalas, pricing.WarrantyDays, pricing.CreatedAt, pricing.UpdatedAt)
	return err
}

func (r *pricingRepository) UpdatePrice(ctx context.Context, id string, priceHalalas int64, warrantyDays int) error {
	query := `UPDATE service_pricing SET price_halalas = $1, warranty_days = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, priceHalalas, warrantyDays, time.Now(), id)
	return err
}
