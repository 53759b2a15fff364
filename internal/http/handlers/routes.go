package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/homenest/homenest-api/internal/domain"
)

// Routes builds the full route table. Guards are applied per group; the
// public group carries none.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/jwt", h.IssueToken)
	r.Post("/users", h.CreateUser)
	r.Get("/properties/verified", h.ListVerifiedProperties)
	r.Get("/properties/advertised", h.ListAdvertisedProperties)
	r.Get("/reviews/latest", h.ListLatestReviews)
	r.Get("/reviews/property/{propertyID}", h.ListPropertyReviews)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT)

		r.Get("/users/{email}", h.GetUserByEmail)
		r.Get("/properties/{id}", h.GetProperty)

		r.Post("/wishlist", h.AddWishlistItem)
		r.Get("/wishlist", h.ListWishlist)
		r.Delete("/wishlist/{id}", h.RemoveWishlistItem)

		r.Post("/reviews", h.CreateReview)
		r.Get("/reviews", h.ListMyReviews)
		r.Delete("/reviews/{id}", h.DeleteReview)

		r.Post("/offers", h.CreateOffer)
		r.Get("/offers", h.ListMyOffers)
		r.Get("/offers/{id}", h.GetOffer)
		r.Get("/bought-properties", h.ListBoughtProperties)
		r.Patch("/offers/{id}", h.MarkOfferBought)

		r.Post("/create-payment-intent", h.CreatePaymentIntent)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT)
		r.Use(h.RequireRole(domain.RoleAgent))

		r.Post("/properties", h.CreateProperty)
		r.Put("/properties/{id}", h.UpdateProperty)
		r.Delete("/properties/{id}", h.DeleteProperty)
		r.Get("/properties/agent", h.ListAgentProperties)
		r.Get("/offers/agent", h.ListAgentOffers)
		r.Patch("/offers/accept/{id}", h.AcceptOffer)
		r.Patch("/offers/reject/{id}", h.RejectOffer)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT)
		r.Use(h.RequireRole(domain.RoleAdmin))

		r.Get("/users", h.ListUsers)
		r.Patch("/users/role/{id}", h.UpdateUserRole)
		r.Patch("/users/fraud/{id}", h.MarkUserFraud)
		r.Delete("/users/{id}", h.DeleteUser)
		r.Get("/properties", h.ListAllProperties)
		r.Patch("/properties/status/{id}", h.UpdatePropertyStatus)
		r.Patch("/properties/advertise/{id}", h.AdvertiseProperty)
		r.Get("/admin-dashboard-summary", h.AdminDashboardSummary)
	})

	return r
}
