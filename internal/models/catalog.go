package models

import (
	"time"
)

// Device catalog is seeded once and read-only at runtime. Names are stored
// in both locales so the client can render either without a second lookup.

type DeviceType struct {
	ID        string    `db:"id" json:"id"`
	Brand     string    `db:"brand" json:"brand"`
	Category  string    `db:"category" json:"category"`
	NameAr    string    `db:"name_ar" json:"name_ar"`
	NameEn    string    `db:"name_en" json:"name_en"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type DeviceModel struct {
	ID           string    `db:"id" json:"id"`
	DeviceTypeID string    `db:"device_type_id" json:"device_type_id"`
	NameAr       string    `db:"name_ar" json:"name_ar"`
	NameEn       string    `db:"name_en" json:"name_en"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type ServiceType struct {
	ID            string    `db:"id" json:"id"`
	NameAr        string    `db:"name_ar" json:"name_ar"`
	NameEn        string    `db:"name_en" json:"name_en"`
	DescriptionAr *string   `db:"description_ar" json:"description_ar,omitempty"`
	DescriptionEn *string   `db:"description_en" json:"description_en,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ServicePricing is the unique join of (device model, service type).
// PriceHalalas is in minor currency units; it is copied onto requests at
// creation time, never referenced afterwards.
type ServicePricing struct {
	ID            string    `db:"id" json:"id"`
	DeviceModelID string    `db:"device_model_id" json:"device_model_id"`
	ServiceTypeID string    `db:"service_type_id" json:"service_type_id"`
	PriceHalalas  int64     `db:"price_halalas" json:"price_halalas"`
	WarrantyDays  int       `db:"warranty_days" json:"warranty_days"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
