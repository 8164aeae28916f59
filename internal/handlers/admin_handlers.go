package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

// ListAllBookings handles GET /admin/bookings
func (h *Handlers) ListAllBookings(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	bookings, err := h.bookingService.ListAll(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

// ListUsers handles GET /admin/users
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	users, err := h.authService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateCategory handles POST /admin/categories
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.Category
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// CreateRecommendation handles POST /admin/recommendations
func (h *Handlers) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendationCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	rec, err := h.recommendationService.Create(r.Context(), &req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// ListRecommendations handles GET /recommendations for the authenticated user
func (h *Handlers) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit, offset := parsePagination(r)
	recs, err := h.recommendationService.ListByUser(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list recommendations")
		return
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recs)
}
