package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/homenest/homenest-api/internal/http/handlers"
	"github.com/homenest/homenest-api/internal/platform/identity"
	"github.com/homenest/homenest-api/internal/platform/mailer"
	"github.com/homenest/homenest-api/internal/platform/payments"
	"github.com/homenest/homenest-api/internal/repo/mongostore"
	"github.com/homenest/homenest-api/internal/service"
	"github.com/homenest/homenest-api/pkg/config"
	"github.com/homenest/homenest-api/pkg/events"
	"github.com/homenest/homenest-api/pkg/logger"
	"github.com/homenest/homenest-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongostore.NewStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	var mailService mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mailService = mailer.NewDevMailer()
	} else {
		mailService = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromAddress)
	}

	var identityProvider identity.Provider
	if cfg.Identity.DevMode || cfg.Identity.BaseURL == "" {
		identityProvider = identity.NewDevProvider()
	} else {
		identityProvider = identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.APIKey)
	}

	paymentProvider := payments.NewStripeProvider(cfg.Stripe.SecretKey)

	userRepo := mongostore.NewUserRepository(store)
	propertyRepo := mongostore.NewPropertyRepository(store)
	wishlistRepo := mongostore.NewWishlistRepository(store)
	reviewRepo := mongostore.NewReviewRepository(store)
	offerRepo := mongostore.NewOfferRepository(store)

	userService := service.NewUserService(userRepo, propertyRepo, identityProvider, eventBus)
	propertyService := service.NewPropertyService(propertyRepo, eventBus)
	wishlistService := service.NewWishlistService(wishlistRepo)
	reviewService := service.NewReviewService(reviewRepo)
	offerService := service.NewOfferService(offerRepo, eventBus, mailService)
	paymentService := service.NewPaymentService(paymentProvider, cfg.Stripe.Currency)
	dashboardService := service.NewDashboardService(userRepo, propertyRepo, reviewRepo, offerRepo)

	h := handlers.New(
		userService,
		propertyService,
		wishlistService,
		reviewService,
		offerService,
		paymentService,
		dashboardService,
		cfg,
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/", h.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
