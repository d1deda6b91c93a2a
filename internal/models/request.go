package models

import (
	"time"
)

// Service request status constants
const (
	RequestStatusPending            = "pending"
	RequestStatusConfirmed          = "confirmed"
	RequestStatusTechnicianAssigned = "technician_assigned"
	RequestStatusInProgress         = "in_progress"
	RequestStatusCompleted          = "completed"
	RequestStatusCancelled          = "cancelled"
)

// Valid request state transitions. Completed and cancelled are terminal;
// cancellation never reverses a completed job.
var ValidRequestTransitions = map[string][]string{
	RequestStatusPending:            {RequestStatusConfirmed, RequestStatusTechnicianAssigned, RequestStatusCancelled},
	RequestStatusConfirmed:          {RequestStatusTechnicianAssigned, RequestStatusCancelled},
	RequestStatusTechnicianAssigned: {RequestStatusInProgress, RequestStatusCancelled},
	RequestStatusInProgress:         {RequestStatusCompleted, RequestStatusCancelled},
	RequestStatusCompleted:          {},
	RequestStatusCancelled:          {},
}

// Service modes
const (
	ServiceModeExpress = "express"
	ServiceModePickup  = "pickup"
)

// Payment methods
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
)

// Payment status constants
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type ServiceRequest struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	DeviceModelID    string     `db:"device_model_id" json:"device_model_id"`
	ServiceTypeID    string     `db:"service_type_id" json:"service_type_id"`
	PricingID        string     `db:"pricing_id" json:"pricing_id"`
	ServiceMode      string     `db:"service_mode" json:"service_mode"`
	IssueDescription *string    `db:"issue_description" json:"issue_description,omitempty"`
	Address          string     `db:"address" json:"address"`
	City             string     `db:"city" json:"city"`
	Country          string     `db:"country" json:"country"`
	PhoneNumber      string     `db:"phone_number" json:"phone_number"`
	PreferredDate    *time.Time `db:"preferred_date" json:"preferred_date,omitempty"`
	PreferredSlot    *string    `db:"preferred_slot" json:"preferred_slot,omitempty"`
	Status           string     `db:"status" json:"status"`
	TechnicianID     *string    `db:"technician_id" json:"technician_id,omitempty"`
	AssignedAt       *time.Time `db:"assigned_at" json:"assigned_at,omitempty"`
	CompletedAt      *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	TotalHalalas     int64      `db:"total_halalas" json:"total_halalas"`
	PaymentMethod    string     `db:"payment_method" json:"payment_method"`
	PaymentStatus    string     `db:"payment_status" json:"payment_status"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateRequestRequest struct {
	DeviceModelID    string     `json:"device_model_id" validate:"required,uuid"`
	ServiceTypeID    string     `json:"service_type_id" validate:"required,uuid"`
	ServiceMode      string     `json:"service_mode" validate:"required,oneof=express pickup"`
	IssueDescription string     `json:"issue_description,omitempty" validate:"omitempty,max=2000"`
	Address          string     `json:"address" validate:"required,min=5,max=500"`
	City             string     `json:"city" validate:"required,min=2,max=100"`
	Country          string     `json:"country,omitempty" validate:"omitempty,min=2,max=100"`
	PhoneNumber      string     `json:"phone_number" validate:"required,min=10,max=15"`
	PreferredDate    *time.Time `json:"preferred_date,omitempty"`
	PreferredSlot    string     `json:"preferred_slot,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	PaymentMethod    string     `json:"payment_method" validate:"required,oneof=cash bank_transfer card"`
	CouponCode       string     `json:"coupon_code,omitempty" validate:"omitempty,min=3,max=32"`
}

type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" validate:"required,uuid"`
}

// UpdateRequestStatusRequest drives the generic admin transition endpoint.
// technician_assigned is deliberately absent: assignment must go through
// the assign endpoint so technician_id and assigned_at are set with it.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
}

// TechnicianStatusRequest restricts the assigned technician to the two
// transitions they are allowed to drive.
type TechnicianStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed"`
}

type RequestResponse struct {
	ID               string              `json:"id"`
	Status           string              `json:"status"`
	User             *UserResponse       `json:"user,omitempty"`
	Technician       *TechnicianResponse `json:"technician,omitempty"`
	DeviceModelID    string              `json:"device_model_id"`
	ServiceTypeID    string              `json:"service_type_id"`
	ServiceMode      string              `json:"service_mode"`
	IssueDescription *string             `json:"issue_description,omitempty"`
	Address          string              `json:"address"`
	City             string              `json:"city"`
	Country          string              `json:"country"`
	PhoneNumber      string              `json:"phone_number"`
	PreferredDate    *time.Time          `json:"preferred_date,omitempty"`
	PreferredSlot    *string             `json:"preferred_slot,omitempty"`
	AssignedAt       *time.Time          `json:"assigned_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	TotalHalalas     int64               `json:"total_halalas"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentStatus    string              `json:"payment_status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (r *ServiceRequest) ToResponse() *RequestResponse {
	return &RequestResponse{
		ID:               r.ID,
		Status:           r.Status,
		DeviceModelID:    r.DeviceModelID,
		ServiceTypeID:    r.ServiceTypeID,
		ServiceMode:      r.ServiceMode,
		IssueDescription: r.IssueDescription,
		Address:          r.Address,
		City:             r.City,
		Country:          r.Country,
		PhoneNumber:      r.PhoneNumber,
		PreferredDate:    r.PreferredDate,
		PreferredSlot:    r.PreferredSlot,
		AssignedAt:       r.AssignedAt,
		CompletedAt:      r.CompletedAt,
		TotalHalalas:     r.TotalHalalas,
		PaymentMethod:    r.PaymentMethod,
		PaymentStatus:    r.PaymentStatus,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// CanTransitionTo checks if a request can transition to a new status
func (r *ServiceRequest) CanTransitionTo(newStatus string) bool {
	validNextStates, exists := ValidRequestTransitions[r.Status]
	if !exists {
		return false
	}

	for _, state := range validNextStates {
		if state == newStatus {
			return true
		}
	}
	return false
}

// IsTerminal returns true once a request has reached completed or cancelled
func (r *ServiceRequest) IsTerminal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusCancelled
}

// IsAssignedTo reports whether the given technician owns this request
func (r *ServiceRequest) IsAssignedTo(technicianID string) bool {
	return r.TechnicianID != nil && *r.TechnicianID == technicianID
}

func IsValidServiceMode(mode string) bool {
	return mode == ServiceModeExpress || mode == ServiceModePickup
}
