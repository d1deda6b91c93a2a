package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/repairlink/repairlink/internal/models"
)

// CatalogRepository serves the seeded, read-only device/service catalog.
// The Create methods exist for seeding only.
type CatalogRepository interface {
	ListDeviceTypes(ctx context.Context) ([]*models.DeviceType, error)
	ListDeviceModels(ctx context.Context, deviceTypeID string) ([]*models.DeviceModel, error)
	GetDeviceModel(ctx context.Context, id string) (*models.DeviceModel, error)
	ListServiceTypes(ctx context.Context) ([]*models.ServiceType, error)
	GetServiceType(ctx context.Context, id string) (*models.ServiceType, error)
	CreateDeviceType(ctx context.Context, dt *models.DeviceType) error
	CreateDeviceModel(ctx context.Context, dm *models.DeviceModel) error
	CreateServiceType(ctx context.Context, st *models.ServiceType) error
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListDeviceTypes(ctx context.Context) ([]*models.DeviceType, error) {
	var types []*models.DeviceType
	query := `SELECT * FROM device_types ORDER BY brand, category`
	err := r.db.SelectContext(ctx, &types, query)
	return types, err
}

func (r *catalogRepository) ListDeviceModels(ctx context.Context, deviceTypeID string) ([]*models.DeviceModel, error) {
	var dms []*models.DeviceModel
	query := `SELECT * FROM device_models WHERE device_type_id = $1 ORDER BY name_en`
	err := r.db.SelectContext(ctx, &dms, query, deviceTypeID)
	return dms, err
}

func (r *catalogRepository) GetDeviceModel(ctx context.Context, id string) (*models.DeviceModel, error) {
	var dm models.DeviceModel
	query := `SELECT * FROM device_models WHERE id = $1`
	err := r.db.GetContext(ctx, &dm, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &dm, err
}

func (r *catalogRepository) ListServiceTypes(ctx context.Context) ([]*models.ServiceType, error) {
	var types []*models.ServiceType
	query := `SELECT * FROM service_types ORDER BY name_en`
	err := r.db.SelectContext(ctx, &types, query)
	return types, err
}

func (r *catalogRepository) GetServiceType(ctx context.Context, id string) (*models.ServiceType, error) {
	var st models.ServiceType
	query := `SELECT * FROM service_types WHERE id = $1`
	err := r.db.GetContext(ctx, &st, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &st, err
}

func (r *catalogRepository) CreateDeviceType(ctx context.Context, dt *models.DeviceType) error {
	if dt.ID == "" {
		dt.ID = uuid.New().String()
	}
	dt.CreatedAt = time.Now()
	query := `INSERT INTO device_types (id, brand, category, name_ar, name_en, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, dt.ID, dt.Brand, dt.Category, dt.NameAr, dt.NameEn, dt.CreatedAt)
	return err
}

func (r *catalogRepository) CreateDeviceModel(ctx context.Context, dm *models.DeviceModel) error {
	if dm.ID == "" {
		dm.ID = uuid.New().String()
	}
	dm.CreatedAt = time.Now()
	query := `INSERT INTO device_models (id, device_type_id, name_ar, name_en, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, dm.ID, dm.DeviceTypeID, dm.NameAr, dm.NameEn, dm.CreatedAt)
	return err
}

func (r *catalogRepository) CreateServiceType(ctx context.Context, st *models.ServiceType) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	st.CreatedAt = time.Now()
	query := `INSERT INTO service_types (id, name_ar, name_en, description_ar, description_en, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, st.ID, st.NameAr, st.NameEn, st.DescriptionAr, st.DescriptionEn, st.CreatedAt)
	return err
}
