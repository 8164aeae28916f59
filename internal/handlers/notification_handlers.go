package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

// ListNotifications handles GET /notifications. Pass ?unread=1 for the
// unread inbox; ordering is newest-first either way.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "1"
	limit, offset := parsePagination(r)

	notifications, err := h.notificationService.List(r.Context(), claims.Sub, unreadOnly, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkNotificationsRead handles POST /notifications/read
func (h *Handlers) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req domain.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	count, err := h.notificationService.MarkRead(r.Context(), claims.Sub, req.IDs)
	if err != nil {
		response.InternalError(w, "Failed to mark notifications read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"marked": count})
}

// MarkAllNotificationsRead handles POST /notifications/read-all
func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	count, err := h.notificationService.MarkAllRead(r.Context(), claims.Sub)
	if err != nil {
		response.InternalError(w, "Failed to mark notifications read")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"marked": count})
}
