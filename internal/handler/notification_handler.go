package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"servicapp/internal/middleware"
	"servicapp/internal/models"
)

// ListNotifications returns the caller's notifications, unread first.
func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	notifications, err := h.Notification.List(r.Context(), userID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	WriteSuccess(w, notifications, http.StatusOK)
}

func (h *Handlers) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	count, err := h.Notification.CountUnread(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]int{"unread": count}, http.StatusOK)
}

func (h *Handlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	notificationID := mux.Vars(r)["id"]

	if err := h.Notification.MarkRead(r.Context(), notificationID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Se requiere autenticación", http.StatusUnauthorized)
		return
	}

	if err := h.Notification.MarkAllRead(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
