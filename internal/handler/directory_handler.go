package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/service"
	"github.com/repairlink/repairlink/pkg/utils"
)

// DirectoryHandler serves the public technician directory. Profiles are
// projected through TechnicianResponse so phone numbers and account ids
// stay off the public surface.
type DirectoryHandler struct {
	technicianService service.TechnicianService
}

func NewDirectoryHandler(technicianService service.TechnicianService) *DirectoryHandler {
	return &DirectoryHandler{technicianService: technicianService}
}

func (h *DirectoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/technicians", h.ListTechnicians)
	r.Get("/technicians/{id}", h.GetTechnician)
	r.Get("/technicians/{id}/reviews", h.ListReviews)
}

// GET /v1/technicians?city=
func (h *DirectoryHandler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.technicianService.ListActive(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		handleError(w, err)
		return
	}

	profiles := make([]*models.TechnicianResponse, 0, len(technicians))
	for _, t := range technicians {
		profiles = append(profiles, t.ToResponse())
	}
	utils.Success(w, http.StatusOK, profiles)
}

// GET /v1/technicians/{id}
func (h *DirectoryHandler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid technician id is required")
		return
	}

	technician, err := h.technicianService.GetTechnician(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, technician.ToResponse())
}

// GET /v1/technicians/{id}/reviews
func (h *DirectoryHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid technician id is required")
		return
	}

	reviews, err := h.technicianService.ListReviews(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, reviews)
}
