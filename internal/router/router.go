package router

import (
	"time"

	"github.com/dhank77/akayacraft/internal/config"
	"github.com/dhank77/akayacraft/internal/handler"
	"github.com/dhank77/akayacraft/internal/middleware"
	"github.com/dhank77/akayacraft/internal/repository"
	"github.com/dhank77/akayacraft/internal/service"
	"github.com/dhank77/akayacraft/internal/storage"
	"github.com/dhank77/akayacraft/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/BlobStore ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, blobs storage.BlobStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories / Services ──────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	janitor := worker.NewDispatcher(rdb)

	catalogSvc := service.NewCatalogService(productRepo, blobs, rdb, janitor, service.CatalogConfig{
		MaxImageBytes: cfg.MaxImageBytes,
		DefaultActive: cfg.ProductDefaultActive,
		CacheTTL:      time.Duration(cfg.ListingCacheSeconds) * time.Second,
	})
	authSvc := service.NewAuthService(cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	adminH := handler.NewAdminProductsHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))
	r.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Uploaded images are retrievable at /storage/<key>
	r.Static("/storage", cfg.StoragePath)

	// Public storefront
	r.GET("/products", productsH.Page)
	api := r.Group("/api")
	{
		api.GET("/products", productsH.Feed)
		api.GET("/categories", productsH.Categories)
	}

	// Admin product management
	admin := r.Group("/admin", middleware.JWTAuth(cfg.JWTSecret))
	{
		admin.GET("/products", adminH.Index)
		admin.GET("/products/create", adminH.Create)
		admin.POST("/products", adminH.Store)
		admin.GET("/products/:id/edit", adminH.Edit)
		admin.PUT("/products/:id", adminH.Update)
		admin.DELETE("/products/:id", adminH.Destroy)
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
