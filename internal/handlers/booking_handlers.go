package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

// CreateBooking handles POST /bookings
func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req domain.BookingCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// ListBookings handles GET /bookings for the authenticated user
func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit, offset := parsePagination(r)

	var statusPtr *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		if st, ok := domain.ParseBookingStatus(raw); ok {
			statusPtr = &st
		} else {
			response.BadRequest(w, "Invalid status parameter")
			return
		}
	}

	bookings, err := h.bookingService.ListByUser(r.Context(), claims.Sub, limit, offset, statusPtr)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{id}
func (h *Handlers) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	if !booking.IsOwner(claims.Sub) && callerRole(claims) != domain.RoleAdmin {
		response.NotFound(w, "not found")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking handles DELETE /bookings/{id}
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	canceled, err := h.bookingService.Cancel(r.Context(), id, claims.Sub, callerRole(claims))
	if err != nil {
		serviceError(w, err)
		return
	}
	if !canceled {
		response.Conflict(w, "Booking already canceled")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}
