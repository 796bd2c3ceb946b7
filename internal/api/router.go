package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentguard/rentguard-api/internal/api/handler"
	"github.com/rentguard/rentguard-api/internal/api/middleware"
	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/service"
	"github.com/rentguard/rentguard-api/internal/infrastructure/config"
	mongodb "github.com/rentguard/rentguard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rentguard/rentguard-api/internal/infrastructure/db/redis"
	"github.com/rentguard/rentguard-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, store *storage.Store, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rentguard"))

	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	e.Use(middleware.RateLimit(limiter, log))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	tenantRepo := mongodb.NewTenantRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	listingRepo := mongodb.NewListingRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	tenantService := service.NewTenantService(tenantRepo, ratingRepo, log)
	ratingService := service.NewRatingService(tenantRepo, ratingRepo, log)
	listingService := service.NewListingService(listingRepo, userRepo, log)
	mediaService := service.NewMediaService(store, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tenantHandler := handler.NewTenantHandler(tenantService, ratingService)
	listingHandler := handler.NewListingHandler(listingService)
	uploadHandler := handler.NewUploadHandler(mediaService)

	auth := middleware.Auth(cfg.JWTSecret)
	landlords := middleware.RBAC(domain.RoleLandlord, domain.RoleAdmin)

	// --- Routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	v1.GET("/users/me", userHandler.Me, auth)
	v1.PUT("/users/me", userHandler.UpdateMe, auth)

	v1.GET("/tenants", tenantHandler.Search)
	v1.GET("/tenants/:id", tenantHandler.Get)
	v1.POST("/tenants", tenantHandler.Create, auth, landlords)
	v1.POST("/tenants/:id/ratings", tenantHandler.Rate, auth, landlords)

	v1.GET("/listings", listingHandler.List)
	v1.GET("/listings/:id", listingHandler.Get)
	v1.POST("/listings", listingHandler.Create, auth, landlords)
	v1.PUT("/listings/:id", listingHandler.Update, auth, landlords)
	v1.DELETE("/listings/:id", listingHandler.Delete, auth, landlords)

	v1.POST("/upload/images", uploadHandler.UploadImages, auth, landlords)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb, store)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
