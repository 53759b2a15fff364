package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/homenest/homenest-api/internal/http/response"
	"github.com/homenest/homenest-api/pkg/auth"
)

type tokenRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken mints a session token for a caller already authenticated by the
// external identity provider. The role claim is advisory only; guarded routes
// re-check the stored role on every call.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		response.BadRequest(w, "email is required")
		return
	}

	token, err := auth.NewAccessToken(req.Email, req.Role, h.config.Auth.JWTSecret, h.config.Auth.TokenTTL)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}
