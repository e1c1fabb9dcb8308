package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/JHanslik/restaurants-back/docs"
	"github.com/JHanslik/restaurants-back/internal/api/handler"
	"github.com/JHanslik/restaurants-back/internal/api/middleware"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
	"github.com/JHanslik/restaurants-back/internal/core/service"
	"github.com/JHanslik/restaurants-back/internal/infrastructure/config"
	mongodb "github.com/JHanslik/restaurants-back/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	media ports.MediaStore,
	cleanup ports.CleanupQueue,
	jwtSecret string,
	log zerolog.Logger,
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
	e.Use(echoprometheus.NewMiddleware("restaurants"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	restaurantRepo := mongodb.NewRestaurantRepository(db)

	tokenService := service.NewTokenService(jwtSecret, config.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	restaurantService := service.NewRestaurantService(restaurantRepo, media, cleanup, log)

	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	imageHandler := handler.NewImageHandler(restaurantService)
	reviewHandler := handler.NewReviewHandler(restaurantService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	requireAuth := middleware.Auth(tokenService, userRepo)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Restaurant routes (all behind auth) ---
	restaurants := e.Group("/api/restaurants", requireAuth)
	restaurants.GET("", restaurantHandler.List)
	restaurants.POST("", restaurantHandler.Create)
	restaurants.GET("/:id", restaurantHandler.Get)
	restaurants.PUT("/:id", restaurantHandler.Update)
	restaurants.DELETE("/:id", restaurantHandler.Delete)

	restaurants.POST("/:id/images", imageHandler.Upload)
	restaurants.DELETE("/:id/images/:imageId", imageHandler.Delete)

	restaurants.POST("/:id/avis", reviewHandler.Add)
	restaurants.PUT("/:id/avis/:avisId", reviewHandler.Update)
	restaurants.DELETE("/:id/avis/:avisId", reviewHandler.Delete)

	// --- Probes, metrics, docs (no auth required) ---
	e.GET("/api/test", healthHandler.Test)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
