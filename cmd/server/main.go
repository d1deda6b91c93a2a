package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/repairlink/repairlink/internal/auth"
	"github.com/repairlink/repairlink/internal/cache"
	"github.com/repairlink/repairlink/internal/config"
	"github.com/repairlink/repairlink/internal/database"
	"github.com/repairlink/repairlink/internal/handler"
	"github.com/repairlink/repairlink/internal/middleware"
	"github.com/repairlink/repairlink/internal/repository"
	"github.com/repairlink/repairlink/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// New Relic is optional
	var nrApp *newrelic.Application
	if cfg.NewRelicEnabled && cfg.NewRelicLicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
			newrelic.ConfigInfoLogger(os.Stdout),
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize New Relic: %v", err)
		} else if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		} else {
			log.Println("New Relic connected")
		}
	}

	db, err := database.NewPostgres(
		cfg.DatabaseURL,
		cfg.DBMaxConnections,
		cfg.DBMaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	log.Println("Connected to Redis")

	sessions := auth.NewManager(redis.Client, cfg.SessionSecret, cfg.SessionTTL)
	locationCache := cache.NewTechnicianLocationCache(redis.Client)

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	technicianRepo := repository.NewTechnicianRepository(db.DB)
	catalogRepo := repository.NewCatalogRepository(db.DB)
	pricingRepo := repository.NewPricingRepository(db.DB)
	requestRepo := repository.NewRequestRepository(db.DB)
	reviewRepo := repository.NewReviewRepository(db.DB)
	receiptRepo := repository.NewReceiptRepository(db.DB)
	couponRepo := repository.NewCouponRepository(db.DB)
	loyaltyRepo := repository.NewLoyaltyRepository(db.DB)
	locationRepo := repository.NewLocationRepository(db.DB)
	chatRepo := repository.NewChatRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	// Services
	notifier := service.NewNotificationService(notificationRepo)
	pricingService := service.NewPricingService(pricingRepo)
	couponService := service.NewCouponService(couponRepo)
	authService := service.NewAuthService(userRepo, technicianRepo, sessions)
	requestService := service.NewRequestService(db.DB, cfg, requestRepo, technicianRepo, userRepo, loyaltyRepo, pricingService, couponService, notifier)
	technicianService := service.NewTechnicianService(technicianRepo, userRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, requestRepo, technicianRepo)
	receiptService := service.NewReceiptService(db.DB, receiptRepo, requestRepo, notifier)
	loyaltyService := service.NewLoyaltyService(db.DB, loyaltyRepo)
	chatService := service.NewChatService(chatRepo, requestRepo, technicianRepo, notifier)
	locationService := service.NewLocationService(locationRepo, requestRepo, locationCache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	catalogHandler := handler.NewCatalogHandler(catalogRepo, pricingService)
	directoryHandler := handler.NewDirectoryHandler(technicianService)
	requestHandler := handler.NewRequestHandler(requestService, reviewService, receiptService, chatService, locationService)
	technicianHandler := handler.NewTechnicianHandler(requestService, reviewService, locationService)
	adminHandler := handler.NewAdminHandler(requestService, technicianService, receiptService, couponService, locationService)
	couponHandler := handler.NewCouponHandler(couponService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)
	notificationHandler := handler.NewNotificationHandler(notifier)

	authenticator := middleware.NewAuthenticator(sessions, userRepo, technicianRepo)

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if nrApp != nil {
		r.Use(middleware.NewRelic(nrApp))
	}

	rateLimiter := middleware.NewRateLimiter(redis.Client, 100, time.Minute)
	r.Use(rateLimiter.Handler)

	idempotency := middleware.NewIdempotency(redis.Client)
	r.Use(idempotency.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := db.Health(ctx); err != nil {
			http.Error(w, "database unhealthy", http.StatusServiceUnavailable)
			return
		}
		if err := redis.Health(ctx); err != nil {
			http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","services":{"database":"up","redis":"up"}}`))
	})

	r.Route("/v1", func(r chi.Router) {
		// Public surface
		authHandler.RegisterPublicRoutes(r)
		catalogHandler.RegisterRoutes(r)
		directoryHandler.RegisterRoutes(r)

		// Authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAuth)

			authHandler.RegisterRoutes(r)
			requestHandler.RegisterRoutes(r)
			couponHandler.RegisterRoutes(r)
			loyaltyHandler.RegisterRoutes(r)
			notificationHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireTechnician)
				technicianHandler.RegisterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAdmin)
				adminHandler.RegisterRoutes(r)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
