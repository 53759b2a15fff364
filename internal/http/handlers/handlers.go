package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/homenest/homenest-api/internal/domain"
	"github.com/homenest/homenest-api/internal/http/response"
	"github.com/homenest/homenest-api/internal/service"
	"github.com/homenest/homenest-api/pkg/auth"
	"github.com/homenest/homenest-api/pkg/config"
	"github.com/homenest/homenest-api/pkg/logger"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

type Handlers struct {
	userService      service.UserService
	propertyService  service.PropertyService
	wishlistService  service.WishlistService
	reviewService    service.ReviewService
	offerService     service.OfferService
	paymentService   service.PaymentService
	dashboardService service.DashboardService
	config           *config.Config
}

func New(
	userService service.UserService,
	propertyService service.PropertyService,
	wishlistService service.WishlistService,
	reviewService service.ReviewService,
	offerService service.OfferService,
	paymentService service.PaymentService,
	dashboardService service.DashboardService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		userService:      userService,
		propertyService:  propertyService,
		wishlistService:  wishlistService,
		reviewService:    reviewService,
		offerService:     offerService,
		paymentService:   paymentService,
		dashboardService: dashboardService,
		config:           cfg,
	}
}

// RequireJWT verifies the bearer token. A missing credential is 401; a
// present but invalid or expired one is 403.
func (h *Handlers) RequireJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			response.Forbidden(w, "Invalid authorization header")
			return
		}

		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			response.Forbidden(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxClaims, claims)
		ctx = context.WithValue(ctx, logger.UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole re-reads the user's current role from storage instead of
// trusting the token claim, so role changes take effect immediately at the
// cost of one lookup per guarded call.
func (h *Handlers) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := getClaims(r)
			if claims == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			user, err := h.userService.GetByEmail(r.Context(), claims.Email)
			if err != nil {
				response.InternalError(w, "Failed to verify role")
				return
			}
			if user == nil || user.Role != role {
				response.Forbidden(w, string(role)+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ctxClaims).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError maps domain errors onto the HTTP taxonomy.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeEmailExists)
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrConflict):
		response.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		response.UpstreamFailure(w, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "error", err, "path", r.URL.Path)
		response.InternalError(w, "Internal server error")
	}
}
