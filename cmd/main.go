package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"catalogstore/internal/assets"
	"catalogstore/internal/caching"
	"catalogstore/internal/config"
	"catalogstore/internal/handlers"
	"catalogstore/internal/jobs"
	"catalogstore/internal/repositories"
	"catalogstore/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create database connection pool
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Asset store backend
	var assetStore assets.Store
	switch cfg.StorageBackend {
	case "minio":
		minioStore, err := assets.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO asset store: %v", err)
		}
		assetStore = minioStore
	case "disk":
		assetStore = assets.NewDiskStore(cfg.UploadDir)
	default:
		log.Fatalf("Unknown storage backend %q (expected disk or minio)", cfg.StorageBackend)
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create repositories and services
	productRepo := repositories.NewProductRepository(pool)
	productSvc := services.NewProductService(productRepo, assetStore, cacheSvc)

	// Create handlers
	productHandlers := handlers.NewProductHandlers(productSvc, assetStore)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Optional orphaned-asset sweeper
	if cfg.SweepOrphans {
		sweeper, err := jobs.NewOrphanSweeper(productRepo, assetStore, cfg.SweepInterval, cfg.SweepMinAge)
		if err != nil {
			log.Fatalf("Failed to create orphan sweeper: %v", err)
		}
		if err := sweeper.Start(); err != nil {
			log.Fatalf("Failed to start orphan sweeper: %v", err)
		}
		defer sweeper.Stop()
	}

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.GET("/products", productHandlers.ListProducts)
	v1.POST("/products", productHandlers.CreateProduct)
	v1.GET("/products/:id", productHandlers.GetProduct)
	v1.PUT("/products/:id", productHandlers.UpdateProduct)
	v1.DELETE("/products/:id", productHandlers.DeleteProduct)
	v1.GET("/products/:id/image", productHandlers.GetProductImage)

	log.Printf("Catalog server starting on port %d (storage backend: %s)", cfg.Port, cfg.StorageBackend)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
