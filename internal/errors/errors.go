package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")

	// Business errors
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrNotAssigned        = errors.New("request not assigned to this technician")
	ErrAlreadyReviewed    = errors.New("request already reviewed")
	ErrRequestNotComplete = errors.New("request is not completed")
	ErrCouponExhausted    = errors.New("coupon usage limit reached")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common API errors
func NotFound(resource string) *APIError {
	return NewAPIError("not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *APIError {
	return NewAPIError("bad_request", message, http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return NewAPIError("conflict", message, http.StatusConflict)
}

func InternalError(message string) *APIError {
	return NewAPIError("internal_error", message, http.StatusInternalServerError)
}

func Unauthorized(message string) *APIError {
	return NewAPIError("unauthorized", message, http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return NewAPIError("forbidden", message, http.StatusForbidden)
}

func InvalidTransition(from, to string) *APIError {
	return NewAPIError("invalid_transition", fmt.Sprintf("cannot transition from %s to %s", from, to), http.StatusBadRequest)
}

func NotAssigned() *APIError {
	return NewAPIError("not_assigned", "request is not assigned to this technician", http.StatusForbidden)
}

func AlreadyReviewed() *APIError {
	return NewAPIError("already_reviewed", "this request has already been reviewed", http.StatusBadRequest)
}

func CouponInvalid(message string) *APIError {
	return NewAPIError("coupon_invalid", message, http.StatusBadRequest)
}

func InsufficientPoints() *APIError {
	return NewAPIError("insufficient_points", "loyalty balance is too low", http.StatusBadRequest)
}
