package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopzeo/internal/config"
	"shopzeo/internal/events"
	"shopzeo/internal/handlers"
	"shopzeo/internal/middleware"
	"shopzeo/internal/repository"
)

// @title Shopzeo Catalog API
// @version 1.0.0
// @description Multivendor e-commerce back office: bulk product import plus stores, categories, brands and banners management

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Redis is optional; cache reads fall through to Postgres when it is down
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	productsRepo := repository.NewProductsRepository(db, redisClient)
	catalogRepo := repository.NewCatalogRepository(db, redisClient)
	storesRepo := repository.NewStoresRepository(db, redisClient)
	bannersRepo := repository.NewBannersRepository(db, redisClient)

	publisher, err := events.NewPublisher(cfg.NATSURL, logger)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS: %v (continuing without event publishing)", err)
		publisher, _ = events.NewPublisher("", logger)
	}
	defer publisher.Close()

	productsHandler := handlers.NewProductsHandler(productsRepo, publisher, logger.WithField("component", "products"))
	importHandler := handlers.NewImportHandler(productsRepo, publisher, logger.WithField("component", "import"), cfg.UploadDir)
	storesHandler := handlers.NewStoresHandler(storesRepo, logger.WithField("component", "stores"))
	categoriesHandler := handlers.NewCategoriesHandler(catalogRepo, logger.WithField("component", "categories"))
	brandsHandler := handlers.NewBrandsHandler(catalogRepo, logger.WithField("component", "brands"))
	bannersHandler := handlers.NewBannersHandler(bannersRepo, logger.WithField("component", "banners"))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// Protected API routes
	api := router.Group("/api")
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		products := api.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)
			products.PATCH("/:id/status", productsHandler.ToggleProductStatus)
			products.PATCH("/:id/featured", productsHandler.ToggleProductFeatured)
		}

		stores := api.Group("/stores")
		{
			stores.GET("", storesHandler.GetStores)
			stores.GET("/export", storesHandler.ExportStores)
			stores.GET("/:id", storesHandler.GetStore)
			stores.POST("", storesHandler.CreateStore)
			stores.PUT("/:id", storesHandler.UpdateStore)
			stores.PATCH("/:id/status", storesHandler.ToggleStoreStatus)
			stores.PATCH("/:id/verification", storesHandler.ToggleStoreVerification)
			stores.DELETE("/:id", storesHandler.DeleteStore)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoriesHandler.GetCategories)
			categories.GET("/:id", categoriesHandler.GetCategory)
			categories.POST("", categoriesHandler.CreateCategory)
			categories.PUT("/:id", categoriesHandler.UpdateCategory)
			categories.DELETE("/:id", categoriesHandler.DeleteCategory)
		}

		subCategories := api.Group("/subcategories")
		{
			subCategories.GET("", categoriesHandler.GetSubCategories)
			subCategories.GET("/:id", categoriesHandler.GetSubCategory)
			subCategories.POST("", categoriesHandler.CreateSubCategory)
			subCategories.PUT("/:id", categoriesHandler.UpdateSubCategory)
			subCategories.DELETE("/:id", categoriesHandler.DeleteSubCategory)
		}

		brands := api.Group("/brands")
		{
			brands.GET("", brandsHandler.GetBrands)
			brands.GET("/:id", brandsHandler.GetBrand)
			brands.POST("", brandsHandler.CreateBrand)
			brands.PUT("/:id", brandsHandler.UpdateBrand)
			brands.DELETE("/:id", brandsHandler.DeleteBrand)
		}

		banners := api.Group("/banners")
		{
			banners.GET("", bannersHandler.GetBanners)
			banners.GET("/:id", bannersHandler.GetBanner)
			banners.POST("", bannersHandler.CreateBanner)
			banners.PUT("/:id", bannersHandler.UpdateBanner)
			banners.PATCH("/:id/status", bannersHandler.ToggleBannerStatus)
			banners.DELETE("/:id", bannersHandler.DeleteBanner)
		}

		// Bulk import surface, admin only
		admin := api.Group("/admin/products")
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/import-csv", importHandler.ImportCSV)
			admin.GET("/import-status", importHandler.GetImportStatus)
			admin.POST("/download-failed-rows", importHandler.DownloadFailedRows)
			admin.GET("/import-template", importHandler.GetImportTemplate)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Shopzeo catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down shopzeo catalog service...")
}
