// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/albanrr9/PharmacyOnline/internal/config"
	"github.com/albanrr9/PharmacyOnline/internal/handlers"
	"github.com/albanrr9/PharmacyOnline/internal/middleware"
	"github.com/albanrr9/PharmacyOnline/internal/models"
	"github.com/albanrr9/PharmacyOnline/internal/services"
	"github.com/albanrr9/PharmacyOnline/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("S3 session unavailable, storing uploads locally")
		storageService = services.NewLocalStorage(cfg)
	}

	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	prescriptionService := services.NewPrescriptionService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService, storageService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limits := middleware.NewRateLimits(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(limits.General())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(limits.Auth())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product catalog: reads are public, writes belong to pharmacies
		// (their own products) and admins.
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.SearchProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RolePharmacy, models.RoleAdmin))
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/images", limits.Upload(), productHandler.UploadProductImages)
			}
		}

		// Order routes. Listing and detail reads apply per-role row scoping
		// inside the service.
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("", middleware.RoleRequired(models.RoleCustomer), orderHandler.CreateOrder)
			orders.PUT("/:id/status", middleware.RoleRequired(models.RolePharmacy, models.RoleAdmin), orderHandler.UpdateOrderStatus)
			orders.POST("/:id/prescriptions", middleware.RoleRequired(models.RoleCustomer), limits.Upload(), prescriptionHandler.UploadPrescription)
		}

		// Prescription routes
		prescriptions := v1.Group("/prescriptions")
		prescriptions.Use(middleware.AuthRequired())
		{
			prescriptions.GET("/:id", prescriptionHandler.GetPrescription)
			prescriptions.PUT("/:id/verify", middleware.AdminRequired(), prescriptionHandler.VerifyPrescription)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
