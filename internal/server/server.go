// Package server assembles the storefront's Fiber application.
package server

import (
	"time"

	"yaraan/internal/config"
	"yaraan/internal/handlers"
	"yaraan/internal/metrics"
	"yaraan/internal/middleware"
	"yaraan/internal/repositories"
	"yaraan/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the resources the server is built from. Publisher is nil when
// event publishing is disabled.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *zerolog.Logger
	Metrics   *metrics.Metrics
	Publisher services.EventPublisher
}

// Server is the wired application.
type Server struct {
	App *fiber.App

	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Auth     *services.AuthService
}

// New wires repositories, services and handlers onto a fresh Fiber app.
func New(deps Deps) *Server {
	logger := deps.Logger

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	stateRepo := repositories.NewGORMStateRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	// --- Services ---
	s := &Server{
		Products: services.NewProductService(productRepo, logger),
		Orders:   services.NewOrderService(orderRepo, deps.Publisher, deps.Metrics, logger),
		Reviews:  services.NewReviewService(reviewRepo, deps.Publisher, deps.Metrics, logger),
		Auth:     services.NewAuthService(userRepo, deps.Config.JWTSecret, logger),
	}
	s.Carts = services.NewCartService(s.Products, stateRepo, deps.Metrics, logger)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(s.Auth, logger)
	productHandler := handlers.NewProductHandler(s.Products, logger)
	cartHandler := handlers.NewCartHandler(s.Carts, s.Orders, logger)
	orderHandler := handlers.NewOrderHandler(s.Orders, logger)
	reviewHandler := handlers.NewReviewHandler(s.Reviews, logger)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "yaraan",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: logger}))

	app.Get("/health", func(c *fiber.Ctx) error {
		code, health, database := fiber.StatusOK, "healthy", "connected"
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			code, health, database = fiber.StatusServiceUnavailable, "degraded", "unreachable"
		}
		rabbit := "disabled"
		if deps.Publisher != nil {
			rabbit = "connected"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
			"rabbitmq": rabbit,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	session := middleware.CartSession(
		middleware.NewCartSessionCodec(deps.Config.CartCookieHashKey, deps.Config.CartCookieBlockKey),
		logger,
	)
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1, session)

	admin := apiV1.Group("/admin", middleware.AuthRequired(s.Auth, logger), middleware.AdminOnly())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)

	s.App = app
	return s
}
