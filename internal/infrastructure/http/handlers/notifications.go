package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/ports/inbound"
	appErrors "github.com/misebox/v1/pkg/errors"
)

// NotificationHandlers serves the notification feed endpoints.
type NotificationHandlers struct {
	service inbound.NotificationService
	logger  *zap.Logger
}

// NewNotificationHandlers creates the notification API handlers.
func NewNotificationHandlers(service inbound.NotificationService, logger *zap.Logger) *NotificationHandlers {
	return &NotificationHandlers{
		service: service,
		logger:  logger.Named("notification-handlers"),
	}
}

// HandleList returns the caller's feed.
// GET /api/v1/notifications?unread_only=true|false
func (h *NotificationHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.logger, appErrors.NewBadRequestError("invalid unread_only value"))
			return
		}
		unreadOnly = parsed
	}

	page, err := h.service.GetNotifications(r.Context(), uid, unreadOnly)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleMarkRead marks one notification as read.
// POST /api/v1/notifications/{id}/read
func (h *NotificationHandlers) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, appErrors.NewBadRequestError("invalid notification id"))
		return
	}

	if err := h.service.MarkRead(r.Context(), uid, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"read": true})
}

// HandleMarkAllRead marks the caller's whole feed as read.
// POST /api/v1/notifications/read-all
func (h *NotificationHandlers) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	count, err := h.service.MarkAllRead(r.Context(), uid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"marked_read": count})
}

// HandleClear empties the caller's feed.
// DELETE /api/v1/notifications
func (h *NotificationHandlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.ClearNotifications(r.Context(), uid); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
