package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	_ "github.com/venturehub/marketplace-api/docs"
	"github.com/venturehub/marketplace-api/internal/api/handler"
	"github.com/venturehub/marketplace-api/internal/api/middleware"
	"github.com/venturehub/marketplace-api/internal/core/domain"
	"github.com/venturehub/marketplace-api/internal/core/service"
	"github.com/venturehub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/venturehub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/venturehub/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	dashboardCache := redisdb.NewDashboardCache(rdb)

	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	productService := service.NewProductService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, accountRepo, log)
	dashboardService := service.NewDashboardService(productRepo, dashboardCache, log)
	uploadService := service.NewUploadService(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)

	secureCookies := cfg.Env != "development"
	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, secureCookies)
	userHandler := handler.NewUserHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	session := middleware.Session(authService)
	entrepreneurOnly := middleware.RequireRole(domain.RoleEntrepreneur, domain.RoleAdmin)
	userOnly := middleware.RequireRole(domain.RoleUser, domain.RoleAdmin)

	// --- Auth routes (rate limited) ---
	authLimiter := middleware.NewRateLimiter(rate.Every(time.Second), 10, 10*time.Minute)
	auth := e.Group("/auth", authLimiter.Middleware())
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signup/entrepreneur", authHandler.SignupEntrepreneur)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- Profile ---
	e.GET("/user", userHandler.Me, session)
	e.POST("/user", userHandler.UpdateProfile, session)

	// --- Products (entrepreneur listings) ---
	products := e.Group("/products", session, entrepreneurOnly)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	// --- Orders (user purchases) ---
	orders := e.Group("/orders", session, userOnly)
	orders.GET("", orderHandler.List)
	orders.POST("", orderHandler.Place)

	// --- Dashboard ---
	e.GET("/dashboard", dashboardHandler.Summary, session, entrepreneurOnly)

	// --- Upload signing ---
	e.POST("/uploads/sign", uploadHandler.Sign, session)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
