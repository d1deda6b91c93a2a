package handler

import (
	"net/http"

	apperrors "github.com/repairlink/repairlink/internal/errors"
	"github.com/repairlink/repairlink/pkg/utils"
)

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apperrors.APIError); ok {
		utils.Error(w, apiErr)
		return
	}

	switch err {
	case apperrors.ErrNotFound:
		utils.NotFound(w, "resource")
	case apperrors.ErrForbidden:
		utils.Forbidden(w, "forbidden")
	case apperrors.ErrUnauthorized:
		utils.Unauthorized(w, "unauthorized")
	case apperrors.ErrNotAssigned:
		utils.Error(w, apperrors.NotAssigned())
	case apperrors.ErrAlreadyReviewed:
		utils.Error(w, apperrors.AlreadyReviewed())
	case apperrors.ErrInsufficientPoints:
		utils.Error(w, apperrors.InsufficientPoints())
	default:
		utils.InternalError(w, "internal server error")
	}
}
