package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/repairlink/repairlink/internal/repository"
	"github.com/repairlink/repairlink/internal/service"
	"github.com/repairlink/repairlink/pkg/utils"
)

// CatalogHandler serves the public, read-only device and service catalog.
type CatalogHandler struct {
	catalogRepo    repository.CatalogRepository
	pricingService service.PricingService
}

func NewCatalogHandler(catalogRepo repository.CatalogRepository, pricingService service.PricingService) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo:    catalogRepo,
		pricingService: pricingService,
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog/device-types", h.ListDeviceTypes)
	r.Get("/catalog/device-types/{id}/models", h.ListDeviceModels)
	r.Get("/catalog/service-types", h.ListServiceTypes)
	r.Get("/catalog/models/{id}/pricing", h.ListPricing)
}

// GET /v1/catalog/device-types
func (h *CatalogHandler) ListDeviceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogRepo.ListDeviceTypes(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, types)
}

// GET /v1/catalog/device-types/{id}/models
func (h *CatalogHandler) ListDeviceModels(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid device type id is required")
		return
	}

	dms, err := h.catalogRepo.ListDeviceModels(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, dms)
}

// GET /v1/catalog/service-types
func (h *CatalogHandler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogRepo.ListServiceTypes(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, types)
}

// GET /v1/catalog/models/{id}/pricing
func (h *CatalogHandler) ListPricing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid device model id is required")
		return
	}

	rows, err := h.pricingService.ListForModel(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, rows)
}
