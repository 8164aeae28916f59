package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

// CreateReview handles POST /destinations/{id}/reviews
func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	destinationID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	var req domain.ReviewCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	review, err := h.reviewService.Create(r.Context(), claims.Sub, destinationID, &req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// UpdateReview handles PATCH /reviews/{id}
func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	var patch domain.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	review, err := h.reviewService.Update(r.Context(), id, claims.Sub, &patch)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// ListReviews handles GET /destinations/{id}/reviews
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	destinationID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	limit, offset := parsePagination(r)
	reviews, err := h.reviewService.ListByDestination(r.Context(), destinationID, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list reviews")
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	writeJSON(w, http.StatusOK, reviews)
}
