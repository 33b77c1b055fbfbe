package routes

import (
	"net/http"
	"time"

	"servana/handlers"
	"servana/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers operator sign-in and sign-out.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints. All of them
// are company-scoped.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequireCompany())
		api.Use(middleware.RequirePermission(middleware.PermManageBookings))
		api.GET("", hb.Booking.ListHandler)
		api.GET("/:id", hb.Booking.GetHandler)
		api.PUT("/:id/assign", hb.Booking.AssignHandler)
		api.PUT("/:id/start", hb.Booking.StartHandler)
		api.PUT("/:id/complete", hb.Booking.CompleteHandler)
		api.PUT("/:id/reject", hb.Booking.RejectHandler)
	}
}

// RegisterWorkerRoutes registers technician management endpoints.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequireCompany())
		api.Use(middleware.RequirePermission(middleware.PermManageWorkers))
		api.GET("", hb.Worker.ListHandler)
		api.POST("", hb.Worker.RegisterHandler)
		api.PUT("/:id", hb.Worker.UpdateHandler)
		api.DELETE("/:id", hb.Worker.DeleteHandler)
		api.PUT("/:id/active", hb.Worker.SetActiveHandler)
	}
}

// RegisterNotificationRoutes registers the per-session alert queues.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequireCompany())
		api.GET("/active", hb.Notification.ActiveHandler)
		api.GET("/stored", hb.Notification.StoredHandler)
		api.POST("", hb.Notification.NotifyHandler)
		api.DELETE("/stored/:id", hb.Notification.DismissStoredHandler)
		api.DELETE("/stored", hb.Notification.ClearStoredHandler)
	}
}

// RegisterOverviewRoutes registers the dashboard statistics endpoint.
func RegisterOverviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/overview")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequireCompany())
		api.Use(middleware.RequirePermission(middleware.PermViewReports))
		api.GET("", hb.Overview.StatsHandler)
	}
}

// RegisterCatalogRoutes registers category and service management.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequireCompany())
		api.Use(middleware.RequirePermission(middleware.PermManageCatalog))

		api.GET("/categories", hb.Catalog.ListCategoriesHandler)
		api.POST("/categories", hb.Catalog.CreateCategoryHandler)
		api.PUT("/categories/:id", hb.Catalog.UpdateCategoryHandler)
		api.DELETE("/categories/:id", hb.Catalog.DeleteCategoryHandler)
		api.PUT("/categories/:id/active", hb.Catalog.SetCategoryActiveHandler)

		api.GET("/services", hb.Catalog.ListServicesHandler)
		api.POST("/services", hb.Catalog.CreateServiceHandler)
		api.PUT("/services/:id", hb.Catalog.UpdateServiceHandler)
		api.DELETE("/services/:id", hb.Catalog.DeleteServiceHandler)
		api.PUT("/services/:id/active", hb.Catalog.SetServiceActiveHandler)
	}
}

// RegisterRiderRoutes registers delivery rider management.
func RegisterRiderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/riders")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequirePermission(middleware.PermManageRiders))
		api.GET("", hb.Rider.ListHandler)
		api.POST("", hb.Rider.RegisterHandler)
		api.PUT("/:id", hb.Rider.UpdateHandler)
		api.DELETE("/:id", hb.Rider.DeleteHandler)
		api.PUT("/:id/active", hb.Rider.SetActiveHandler)
	}
}

// RegisterPromoRoutes registers coupons, banners, hotspots and campaigns.
func RegisterPromoRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/promos")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.Use(middleware.RequirePermission(middleware.PermManagePromos))

		api.GET("/coupons", hb.Promo.ListCouponsHandler)
		api.POST("/coupons", hb.Promo.CreateCouponHandler)
		api.PUT("/coupons/:id", hb.Promo.UpdateCouponHandler)
		api.DELETE("/coupons/:id", hb.Promo.DeleteCouponHandler)

		api.GET("/banners", hb.Promo.ListBannersHandler)
		api.POST("/banners", hb.Promo.CreateBannerHandler)
		api.DELETE("/banners/:id", hb.Promo.DeleteBannerHandler)

		api.GET("/hotspots", hb.Promo.ListHotspotsHandler)
		api.POST("/hotspots", hb.Promo.CreateHotspotHandler)
		api.PUT("/hotspots/:id", hb.Promo.UpdateHotspotHandler)
		api.DELETE("/hotspots/:id", hb.Promo.DeleteHotspotHandler)
	}

	campaigns := r.Group("/api/campaigns")
	{
		campaigns.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		campaigns.Use(middleware.RequirePermission(middleware.PermSendCampaigns))
		campaigns.POST("", hb.Promo.SendCampaignHandler)
		campaigns.GET("/:id", hb.Promo.GetCampaignHandler)
	}
}

// RegisterStorageRoutes registers direct object-store endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AdminRepo))
		api.POST("/upload", hb.Storage.UploadFileHandler)
		api.GET("/download-url", hb.Storage.GetDownloadURLHandler)
		api.DELETE("/file", hb.Storage.DeleteFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Servana"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterOverviewRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterRiderRoutes(r, hb)
	RegisterPromoRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
}
