// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storedash/backend/internal/cache"
	"github.com/storedash/backend/internal/config"
	"github.com/storedash/backend/internal/handlers"
	"github.com/storedash/backend/internal/middleware"
	"github.com/storedash/backend/internal/services"
	"github.com/storedash/backend/internal/utils"
)

func Initialize(db *gorm.DB, cacheClient cache.Client, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	notificationService := services.NewNotificationService(cfg.Email, cfg.Frontend)
	storageService, err := services.NewStorageService(cfg.AWS, cfg.Server)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg.JWT)
	catalogService := services.NewCatalogService(db)
	saleService := services.NewSaleService(db)
	teamService := services.NewTeamService(db, notificationService)
	analyticsService := services.NewAnalyticsService(db, cacheClient)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	saleHandler := handlers.NewSaleHandler(saleService)
	teamHandler := handlers.NewTeamHandler(teamService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	settingsHandler := handlers.NewSettingsHandler()

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

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
		{
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.POST("/refresh", middleware.AuthRateLimit(), authHandler.Refresh)

			protected := auth.Group("")
			protected.Use(middleware.AuthRequired(db))
			{
				protected.GET("/me", authHandler.GetProfile)
				protected.PUT("/profile", authHandler.UpdateProfile)
				protected.PUT("/password", authHandler.ChangePassword)
			}
		}

		// Product routes
		products := v1.Group("/products")
		products.Use(middleware.AuthRequired(db))
		{
			products.GET("", productHandler.ListProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Sale routes
		sales := v1.Group("/sales")
		sales.Use(middleware.AuthRequired(db))
		{
			sales.GET("", saleHandler.ListSales)
			sales.POST("", saleHandler.CreateSale)
			sales.DELETE("/:id", saleHandler.DeleteSale)
		}

		// Team routes (super-admin only)
		admins := v1.Group("/admins")
		admins.Use(middleware.AuthRequired(db), middleware.SuperAdminRequired())
		{
			admins.GET("", teamHandler.ListAdmins)
			admins.POST("", teamHandler.CreateAdmin)
			admins.DELETE("/:id", teamHandler.DeleteAdmin)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired(db))
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/analytics", dashboardHandler.GetAnalytics)
		}

		// Category labels
		v1.GET("/categories", middleware.AuthRequired(db), dashboardHandler.GetCategories)

		// Upload routes
		uploads := v1.Group("/uploads")
		uploads.Use(middleware.AuthRequired(db), middleware.UploadRateLimit())
		{
			uploads.POST("/images", uploadHandler.UploadProductImage)
		}

		// Settings routes (super-admin only)
		settings := v1.Group("/settings")
		settings.Use(middleware.AuthRequired(db), middleware.SuperAdminRequired())
		{
			settings.PUT("/company", settingsHandler.UpdateCompanySettings)
		}
	}

	return r, nil
}
