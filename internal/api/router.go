package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careslot/booking-api/internal/api/handler"
	"github.com/careslot/booking-api/internal/api/middleware"
	"github.com/careslot/booking-api/internal/core/domain"
	"github.com/careslot/booking-api/internal/core/ports"
	"github.com/careslot/booking-api/internal/core/service"
	"github.com/careslot/booking-api/internal/infrastructure/config"
	mongodb "github.com/careslot/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/careslot/booking-api/internal/infrastructure/db/redis"
	"github.com/careslot/booking-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	db *mongo.Database,
	rdb *goredis.Client,
	store ports.ObjectStorage,
	storeHealth handlers.StoragePinger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("booking"))

	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	e.Use(middleware.RateLimit(limiter, log))

	// --- Repositories and services ---
	authRepo := mongodb.NewAuthRepository(db)
	providerRepo := mongodb.NewProviderRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.JWTTTL)
	providerService := service.NewProviderService(providerRepo, bookingRepo, store, log)
	bookingService := service.NewBookingService(bookingRepo, providerRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	providerHandler := handler.NewProviderHandler(providerService, cfg.Storage.PublicURL)
	bookingHandler := handler.NewBookingHandler(bookingService, cfg.Storage.PublicURL)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/me", authHandler.Me, auth)

	v1.GET("/providers", providerHandler.List)
	v1.GET("/providers/:id", providerHandler.Get)
	v1.POST("/providers", providerHandler.Create, auth, adminOnly)
	v1.PUT("/providers/:id", providerHandler.Update, auth, adminOnly)
	v1.DELETE("/providers/:id", providerHandler.Delete, auth, adminOnly)
	v1.PUT("/providers/:id/images", providerHandler.UploadImages, auth, adminOnly)
	v1.DELETE("/providers/:id/images", providerHandler.DeleteImage, auth, adminOnly)

	v1.POST("/providers/:id/bookings", bookingHandler.Create, auth)
	v1.GET("/bookings", bookingHandler.List, auth)
	v1.GET("/bookings/:id", bookingHandler.Get, auth)
	v1.PUT("/bookings/:id", bookingHandler.Update, auth)
	v1.DELETE("/bookings/:id", bookingHandler.Delete, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb, storeHealth)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
