package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/repairlink/repairlink/internal/middleware"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/service"
	"github.com/repairlink/repairlink/pkg/utils"
)

// TechnicianHandler serves the technician-facing surface: their queue,
// the two transitions they may drive, location pings and review replies.
type TechnicianHandler struct {
	requestService  service.RequestService
	reviewService   service.ReviewService
	locationService service.LocationService
	validate        *validator.Validate
}

func NewTechnicianHandler(
	requestService service.RequestService,
	reviewService service.ReviewService,
	locationService service.LocationService,
) *TechnicianHandler {
	return &TechnicianHandler{
		requestService:  requestService,
		reviewService:   reviewService,
		locationService: locationService,
		validate:        validator.New(),
	}
}

func (h *TechnicianHandler) RegisterRoutes(r chi.Router) {
	r.Get("/technician/requests", h.ListAssigned)
	r.Post("/technician/requests/{id}/status", h.UpdateStatus)
	r.Post("/technician/requests/{id}/response", h.RespondToReview)
	r.Post("/technician/location", h.UpdateLocation)
}

// GET /v1/technician/requests
func (h *TechnicianHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	technician := middleware.TechnicianFrom(r.Context())
	requests, err := h.requestService.ListAssigned(r.Context(), technician.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, requests)
}

// POST /v1/technician/requests/{id}/status
func (h *TechnicianHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.TechnicianStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	technician := middleware.TechnicianFrom(r.Context())
	if err := h.requestService.TechnicianUpdateStatus(r.Context(), technician, id, req.Status); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{"status": req.Status})
}

// POST /v1/technician/requests/{id}/response
func (h *TechnicianHandler) RespondToReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.ReviewResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	technician := middleware.TechnicianFrom(r.Context())
	if err := h.reviewService.RespondToReview(r.Context(), technician, id, &req); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{"status": "responded"})
}

// POST /v1/technician/location
func (h *TechnicianHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	technician := middleware.TechnicianFrom(r.Context())
	if err := h.locationService.UpdateLocation(r.Context(), technician, &req); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{"status": "recorded"})
}
