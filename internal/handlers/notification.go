package handlers

import (
	"RGFlow/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationHandler — уведомления.
type NotificationHandler struct {
	NotificationService *service.NotificationService
	Logger              *zap.SugaredLogger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{NotificationService: notificationService, Logger: logger}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.NotificationService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "Notifications list", err)
		return
	}
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"unread": unread, "items": list})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, "Notification read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
