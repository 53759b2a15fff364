package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/homenest/homenest-api/internal/http/response"
)

type paymentIntentRequest struct {
	Price float64 `json:"price"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// CreatePaymentIntent opens a charge with the payment processor and hands
// the client secret back for the browser-side confirmation step.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	secret, err := h.paymentService.CreateIntent(r.Context(), req.Price)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}
