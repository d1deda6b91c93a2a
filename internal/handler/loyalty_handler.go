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

type LoyaltyHandler struct {
	loyaltyService service.LoyaltyService
	validate       *validator.Validate
}

func NewLoyaltyHandler(loyaltyService service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
		validate:       validator.New(),
	}
}

func (h *LoyaltyHandler) RegisterRoutes(r chi.Router) {
	r.Get("/loyalty", h.GetSummary)
	r.Get("/loyalty/transactions", h.ListTransactions)
	r.Post("/loyalty/redeem", h.Redeem)
}

// GET /v1/loyalty
func (h *LoyaltyHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	summary, err := h.loyaltyService.GetSummary(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, summary)
}

// GET /v1/loyalty/transactions?limit=
func (h *LoyaltyHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	user := middleware.UserFrom(r.Context())
	txns, err := h.loyaltyService.ListTransactions(r.Context(), user.ID, limit)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, txns)
}

// POST /v1/loyalty/redeem
func (h *LoyaltyHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req models.RedeemPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	summary, err := h.loyaltyService.Redeem(r.Context(), user.ID, req.Points)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, summary)
}
