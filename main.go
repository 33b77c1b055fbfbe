package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servana/config"
	"servana/cron"
	"servana/database"
	adminRepoPkg "servana/database/repository/admin"
	bookingRepoPkg "servana/database/repository/booking"
	catalogRepoPkg "servana/database/repository/catalog"
	notificationRepoPkg "servana/database/repository/notification"
	promoRepoPkg "servana/database/repository/promo"
	riderRepoPkg "servana/database/repository/rider"
	workerRepoPkg "servana/database/repository/worker"
	"servana/handlers"
	"servana/middleware"
	"servana/routes"
	"servana/services/booking"
	"servana/services/catalog"
	"servana/services/identity"
	"servana/services/notification"
	"servana/services/overview"
	"servana/services/worker"
	"servana/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	adminRepo := adminRepoPkg.NewMongoAdminRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	workerRepo := workerRepoPkg.NewMongoWorkerRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	riderRepo := riderRepoPkg.NewMongoRiderRepo()
	promoRepo := promoRepoPkg.NewMongoPromoRepo()
	notificationStore := notificationRepoPkg.NewRedisStoreRepo(utils.GetNotificationCacheClient())

	// background task queue + worker.
	taskQueue := cron.NewTaskQueue()
	cron.InitWorker(bookingRepo, promoRepo)

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		WorkerRepo: workerRepo,
		Expiry:     taskQueue,
		Logger:     logger,
	}
	workerService := &worker.DefaultWorkerService{
		Repo:    workerRepo,
		Catalog: catalogRepo,
		Logger:  logger,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:   catalogRepo,
		Logger: logger,
	}
	overviewService := &overview.DefaultOverviewService{
		Repo: bookingRepo,
	}

	// Notification sessions follow the identity provider: sign-in starts a
	// per-company engine, sign-out tears it down.
	identityProvider := identity.NewProvider()
	notificationManager := notification.NewManager(bookingRepo, notificationStore, &notification.FCMPusher{}, logger)
	identityProvider.OnAuthStateChange(func(ev identity.Event) {
		switch ev.Type {
		case identity.EventSignIn:
			notificationManager.OnSignIn(ev.CompanyID)
		case identity.EventSignOut:
			notificationManager.OnSignOut(ev.CompanyID)
		}
	})

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AdminRepo:    adminRepo,
		Auth:         handlers.NewAuthHandler(adminRepo, identityProvider),
		Booking:      handlers.NewBookingHandler(bookingService),
		Worker:       handlers.NewWorkerHandler(workerService),
		Notification: handlers.NewNotificationHandler(notificationManager),
		Overview:     handlers.NewOverviewHandler(overviewService),
		Catalog:      handlers.NewCatalogHandler(catalogService, cloudinaryStorageService),
		Rider:        handlers.NewRiderHandler(riderRepo, cloudinaryStorageService),
		Promo:        handlers.NewPromoHandler(promoRepo, cloudinaryStorageService, taskQueue),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
