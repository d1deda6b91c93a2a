package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/repairlink/repairlink/internal/middleware"
	"github.com/repairlink/repairlink/internal/service"
	"github.com/repairlink/repairlink/pkg/utils"
)

type NotificationHandler struct {
	notifier service.Notifier
}

func NewNotificationHandler(notifier service.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.List)
	r.Post("/notifications/read", h.MarkRead)
}

// GET /v1/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	notifications, err := h.notifier.ListForUser(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, notifications)
}

// POST /v1/notifications/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.notifier.MarkRead(r.Context(), user.ID); err != nil {
		handleError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, map[string]string{"status": "read"})
}
