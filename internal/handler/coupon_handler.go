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

type CouponHandler struct {
	couponService service.CouponService
	validate      *validator.Validate
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		validate:      validator.New(),
	}
}

func (h *CouponHandler) RegisterRoutes(r chi.Router) {
	r.Post("/coupons/validate", h.Validate)
}

// POST /v1/coupons/validate
//
// A dry run: reports whether the coupon would apply and at what discount,
// without consuming a use.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	user := middleware.UserFrom(r.Context())
	result, err := h.couponService.Validate(r.Context(), user.ID, req.Code, req.OrderHalalas)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, result)
}
