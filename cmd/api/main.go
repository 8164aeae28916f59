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
	"github.com/redis/go-redis/v9"

	"github.com/voyago/travelbook/internal/handlers"
	"github.com/voyago/travelbook/internal/repository"
	"github.com/voyago/travelbook/internal/service"
	"github.com/voyago/travelbook/pkg/config"
	"github.com/voyago/travelbook/pkg/database"
	"github.com/voyago/travelbook/pkg/events"
	"github.com/voyago/travelbook/pkg/logger"
	mw "github.com/voyago/travelbook/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Redis backs the rate limiter only
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	walletRepo := repository.NewWalletRepository(pool)
	destinationRepo := repository.NewDestinationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	recommendationRepo := repository.NewRecommendationRepository(pool)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	walletService := service.NewWalletService(walletRepo, eventBus)
	bookingService := service.NewBookingService(bookingRepo, destinationRepo, userRepo, eventBus)
	reviewService := service.NewReviewService(reviewRepo, destinationRepo, userRepo, eventBus)
	notificationService := service.NewNotificationService(notificationRepo)
	catalogService := service.NewCatalogService(destinationRepo, userRepo)
	recommendationService := service.NewRecommendationService(recommendationRepo, destinationRepo, userRepo, eventBus)

	// Initialize handlers
	h := handlers.New(
		authService, bookingService, walletService, reviewService,
		notificationService, catalogService, recommendationService, cfg,
	)

	authLimiter := mw.NewRateLimiter(redisClient, mw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		KeyFunc:  mw.ClientIPKeyFunc,
	})
	bookingLimiter := mw.NewRateLimiter(redisClient, mw.RateLimitConfig{
		Requests: 30,
		Window:   time.Minute,
		KeyFunc:  mw.ClientIPKeyFunc,
	})

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware())
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	// Public catalog
	r.Get("/destinations", h.ListDestinations)
	r.Get("/destinations/{id}", h.GetDestination)
	r.Get("/destinations/{id}/reviews", h.ListReviews)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/activities", h.ListActivities)

	// Authenticated user routes
	r.Group(func(r chi.Router) {
		r.Use(h.RequireJWT(""))
		r.Get("/me", h.Me)
		r.Get("/wallet", h.GetWallet)
		r.Post("/wallet/topup", h.TopUpWallet)
		r.Get("/notifications", h.ListNotifications)
		r.Post("/notifications/read", h.MarkNotificationsRead)
		r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
		r.Get("/recommendations", h.ListRecommendations)
		r.Post("/destinations/{id}/reviews", h.CreateReview)
		r.Patch("/reviews/{id}", h.UpdateReview)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(h.RequireJWT(""))
		r.With(bookingLimiter.Middleware()).Post("/", h.CreateBooking)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Delete("/{id}", h.CancelBooking)
	})

	r.Route("/partner", func(r chi.Router) {
		r.Use(h.RequireJWT("partner"))
		r.Post("/destinations", h.CreateDestination)
		r.Get("/destinations", h.ListPartnerDestinations)
		r.Patch("/destinations/{id}", h.UpdateDestination)
		r.Delete("/destinations/{id}", h.DeleteDestination)
		r.Post("/destinations/{id}/images", h.AddDestinationImage)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.RequireJWT("admin"))
		r.Get("/bookings", h.ListAllBookings)
		r.Get("/users", h.ListUsers)
		r.Post("/categories", h.CreateCategory)
		r.Post("/recommendations", h.CreateRecommendation)
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
