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

type RequestHandler struct {
	requestService  service.RequestService
	reviewService   service.ReviewService
	receiptService  service.ReceiptService
	chatService     service.ChatService
	locationService service.LocationService
	validate        *validator.Validate
}

func NewRequestHandler(
	requestService service.RequestService,
	reviewService service.ReviewService,
	receiptService service.ReceiptService,
	chatService service.ChatService,
	locationService service.LocationService,
) *RequestHandler {
	return &RequestHandler{
		requestService:  requestService,
		reviewService:   reviewService,
		receiptService:  receiptService,
		chatService:     chatService,
		locationService: locationService,
		validate:        validator.New(),
	}
}

func (h *RequestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/requests", h.CreateRequest)
	r.Get("/requests", h.ListOwn)
	r.Get("/requests/{id}", h.GetRequest)
	r.Get("/requests/{id}/location", h.GetLocation)
	r.Post("/requests/{id}/review", h.CreateReview)
	r.Get("/requests/{id}/review", h.GetReview)
	r.Post("/requests/{id}/receipt", h.UploadReceipt)
	r.Get("/requests/{id}/receipt", h.GetReceipt)
	r.Get("/requests/{id}/chat", h.GetChat)
	r.Post("/requests/{id}/chat", h.SendMessage)
}

// POST /v1/requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	request, err := h.requestService.CreateRequest(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, request)
}

// GET /v1/requests
func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	requests, err := h.requestService.ListOwn(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, requests)
}

// GET /v1/requests/{id}
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	user := middleware.UserFrom(r.Context())
	technician := middleware.TechnicianFrom(r.Context())

	request, err := h.requestService.GetRequest(r.Context(), user, technician, id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, request)
}

// GET /v1/requests/{id}/location
func (h *RequestHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	user := middleware.UserFrom(r.Context())
	technician := middleware.TechnicianFrom(r.Context())

	loc, err := h.locationService.GetRequestLocation(r.Context(), user, technician, id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, loc)
}

// POST /v1/requests/{id}/review
func (h *RequestHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	review, err := h.reviewService.CreateReview(r.Context(), user, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Created(w, review)
}

// GET /v1/requests/{id}/review
func (h *RequestHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	review, err := h.reviewService.GetByRequestID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, review)
}

// POST /v1/requests/{id}/receipt
func (h *RequestHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.UploadReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	receipt, err := h.receiptService.UploadReceipt(r.Context(), user, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Created(w, receipt)
}

// GET /v1/requests/{id}/receipt
func (h *RequestHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	user := middleware.UserFrom(r.Context())
	technician := middleware.TechnicianFrom(r.Context())

	receipt, err := h.receiptService.GetByRequestID(r.Context(), user, technician, id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, receipt)
}

// GET /v1/requests/{id}/chat
func (h *RequestHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	user := middleware.UserFrom(r.Context())
	technician := middleware.TechnicianFrom(r.Context())

	room, err := h.chatService.GetRoom(r.Context(), user, technician, id)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, room)
}

// POST /v1/requests/{id}/chat
func (h *RequestHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "a valid request id is required")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	technician := middleware.TechnicianFrom(r.Context())

	msg, err := h.chatService.SendMessage(r.Context(), user, technician, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Created(w, msg)
}
