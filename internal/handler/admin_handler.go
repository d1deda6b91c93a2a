package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/repairlink/repairlink/internal/middleware"
	"github.com/repairlink/repairlink/internal/models"
	"github.com/repairlink/repairlink/internal/service"
	"github.com/repairlink/repairlink/pkg/utils"
)

type AdminHandler struct {
	requestService    service.RequestService
	technicianService service.TechnicianService
	receiptService    service.ReceiptService
	couponService     service.CouponService
	locationService   service.LocationService
	validate          *validator.Validate
}

func NewAdminHandler(
	requestService service.RequestService,
	technicianService service.TechnicianService,
	receiptService service.ReceiptService,
	couponService service.CouponService,
	locationService service.LocationService,
) *AdminHandler {
	return &AdminHandler{
		requestService:    requestService,
		technicianService: technicianService,
		receiptService:    receiptService,
		couponService:     couponService,
		locationService:   locationService,
		validate:          validator.New(),
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/requests", h.ListRequests)
	r.Post("/admin/requests/{id}/assign", h.AssignTechnician)
	r.Post("/admin/requests/{id}/status", h.UpdateStatus)

	r.Post("/admin/technicians", h.CreateTechnician)
	r.Get("/admin/technicians", h.ListTechnicians)
	r.Get("/admin/technicians/nearby", h.NearbyTechnicians)
	r.Post("/admin/technicians/{id}/activate", h.Activate)
	r.Post("/admin/technicians/{id}/deactivate", h.Deactivate)

	r.Get("/admin/receipts/pending", h.ListPendingReceipts)
	r.Post("/admin/receipts/{id}/approve", h.ApproveReceipt)
	r.Post("/admin/receipts/{id}/reject", h.RejectReceipt)

	r.Post("/admin/coupons", h.CreateCoupon)
}

// GET /v1/admin/requests?status=
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, requests)
}

// POST /v1/admin/requests/{id}/assign
func (h *AdminHandler) AssignTechnician(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.AssignTechnicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	request, err := h.requestService.AssignTechnician(r.Context(), id, req.TechnicianID)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, request)
}

// POST /v1/admin/requests/{id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.UpdateRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	if err := h.requestService.AdminUpdateStatus(r.Context(), id, req.Status); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{"status": req.Status})
}

// POST /v1/admin/technicians
func (h *AdminHandler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTechnicianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	technician, err := h.technicianService.CreateTechnician(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, technician)
}

// GET /v1/admin/technicians?city=
func (h *AdminHandler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.technicianService.ListActive(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, technicians)
}

// GET /v1/admin/technicians/nearby?city=&lat=&lng=&radius_km=
//
// Reads the live geo cache, so only technicians with a recent location
// fix show up. Used when picking an assignee for a confirmed request.
func (h *AdminHandler) NearbyTechnicians(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	city := q.Get("city")
	if city == "" {
		utils.BadRequest(w, "city is required")
		return
	}

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		utils.BadRequest(w, "a valid lat is required")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		utils.BadRequest(w, "a valid lng is required")
		return
	}
	radiusKm, _ := strconv.ParseFloat(q.Get("radius_km"), 64)

	technicians, err := h.locationService.GetNearby(r.Context(), city, lat, lng, radiusKm)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, technicians)
}

// POST /v1/admin/technicians/{id}/activate
func (h *AdminHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// POST /v1/admin/technicians/{id}/deactivate
func (h *AdminHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *AdminHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid technician id is required")
		return
	}

	if err := h.technicianService.SetActive(r.Context(), id, active); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]bool{"is_active": active})
}

// GET /v1/admin/receipts/pending
func (h *AdminHandler) ListPendingReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receiptService.ListPending(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, receipts)
}

// POST /v1/admin/receipts/{id}/approve
func (h *AdminHandler) ApproveReceipt(w http.ResponseWriter, r *http.Request) {
	h.reviewReceipt(w, r, true)
}

// POST /v1/admin/receipts/{id}/reject
func (h *AdminHandler) RejectReceipt(w http.ResponseWriter, r *http.Request) {
	h.reviewReceipt(w, r, false)
}

func (h *AdminHandler) reviewReceipt(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid receipt id is required")
		return
	}

	admin := middleware.UserFrom(r.Context())
	if err := h.receiptService.Review(r.Context(), admin, id, approve); err != nil {
		handleError(w, err)
		return
	}

	status := models.ReceiptStatusRejected
	if approve {
		status = models.ReceiptStatusApproved
	}
	utils.Success(w, http.StatusOK, map[string]string{"status": status})
}

// POST /v1/admin/coupons
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	coupon, err := h.couponService.CreateCoupon(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, coupon)
}
