package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/http/response"
)

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req domain.PropertyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	property, err := h.propertyService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.propertyService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if property == nil {
		response.NotFound(w, "Property not found")
		return
	}

	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) ListAllProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertyService.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

// ListVerifiedProperties is the public browse surface: verified listings
// ordered by ascending minimum price.
func (h *Handlers) ListVerifiedProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertyService.ListVerified(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

func (h *Handlers) ListAdvertisedProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertyService.ListAdvertised(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

func (h *Handlers) ListAgentProperties(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	properties, err := h.propertyService.ListByAgent(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, properties)
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.PropertyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.propertyService.Replace(r.Context(), id, &req); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) UpdatePropertyStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	status, ok := domain.ParsePropertyStatus(req.Status)
	if !ok {
		response.BadRequest(w, "status must be pending, verified or rejected")
		return
	}

	if err := h.propertyService.UpdateStatus(r.Context(), id, status); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type advertiseRequest struct {
	Advertised bool `json:"advertised"`
}

func (h *Handlers) AdvertiseProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req advertiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.propertyService.SetAdvertised(r.Context(), id, req.Advertised); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.propertyService.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
