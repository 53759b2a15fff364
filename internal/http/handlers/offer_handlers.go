package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/http/response"
)

func (h *Handlers) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req domain.OfferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	offer, err := h.offerService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, offer)
}

func (h *Handlers) GetOffer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	offer, err := h.offerService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if offer == nil {
		response.NotFound(w, "Offer not found")
		return
	}

	writeJSON(w, http.StatusOK, offer)
}

func (h *Handlers) ListMyOffers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	offers, err := h.offerService.ListByBuyer(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

func (h *Handlers) ListAgentOffers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	offers, err := h.offerService.ListByAgent(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

func (h *Handlers) ListBoughtProperties(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}

	offers, err := h.offerService.ListBoughtByBuyer(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

func (h *Handlers) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	offer, err := h.offerService.Accept(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}

func (h *Handlers) RejectOffer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.offerService.Reject(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

type markBoughtRequest struct {
	TransactionID string `json:"transaction_id"`
}

func (h *Handlers) MarkOfferBought(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req markBoughtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	offer, err := h.offerService.MarkBought(r.Context(), id, req.TransactionID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, offer)
}
