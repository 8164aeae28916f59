package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
)

// ListDestinations handles GET /destinations
func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	destinations, err := h.catalogService.ListDestinations(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list destinations")
		return
	}
	if destinations == nil {
		destinations = []domain.Destination{}
	}

	writeJSON(w, http.StatusOK, destinations)
}

// GetDestination handles GET /destinations/{id}
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	detail, err := h.catalogService.GetDestination(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListCategories handles GET /categories
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list categories")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

// ListActivities handles GET /categories/{id}/activities
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	activities, err := h.catalogService.ListActivities(r.Context(), categoryID)
	if err != nil {
		response.InternalError(w, "Failed to list activities")
		return
	}
	if activities == nil {
		activities = []domain.Activity{}
	}

	writeJSON(w, http.StatusOK, activities)
}

// CreateDestination handles POST /partner/destinations
func (h *Handlers) CreateDestination(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req domain.DestinationCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	destination, err := h.catalogService.CreateDestination(r.Context(), claims.Sub, &req)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, destination)
}

// ListPartnerDestinations handles GET /partner/destinations
func (h *Handlers) ListPartnerDestinations(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	limit, offset := parsePagination(r)
	destinations, err := h.catalogService.ListByPartner(r.Context(), claims.Sub, limit, offset)
	if err != nil {
		response.InternalError(w, "Failed to list destinations")
		return
	}
	if destinations == nil {
		destinations = []domain.Destination{}
	}

	writeJSON(w, http.StatusOK, destinations)
}

// UpdateDestination handles PATCH /partner/destinations/{id}
func (h *Handlers) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	var patch domain.DestinationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	destination, err := h.catalogService.UpdateDestination(r.Context(), id, claims.Sub, callerRole(claims), &patch)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, destination)
}

// DeleteDestination handles DELETE /partner/destinations/{id}. Images and
// reviews go with the destination.
func (h *Handlers) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	deleted, err := h.catalogService.DeleteDestination(r.Context(), id, claims.Sub, callerRole(claims))
	if err != nil {
		serviceError(w, err)
		return
	}
	if !deleted {
		response.NotFound(w, "Destination not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addImageRequest struct {
	URL string `json:"url"`
}

// AddDestinationImage handles POST /partner/destinations/{id}/images
func (h *Handlers) AddDestinationImage(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid destination ID")
		return
	}

	var req addImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	image, err := h.catalogService.AddImage(r.Context(), id, claims.Sub, callerRole(claims), req.URL)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, image)
}
