package server

import (
	"jurnal/internal/config"
	"jurnal/internal/handlers"
	"jurnal/internal/middleware"
	"jurnal/internal/models"
	"jurnal/internal/repositories"
	"jurnal/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a Fiber app.
func New(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	articleRepo := repositories.NewGORMArticleRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, log.With().Str("component", "auth").Logger())
	userService := services.NewUserService(userRepo, log.With().Str("component", "users").Logger())
	articleService := services.NewArticleService(articleRepo, userRepo, log.With().Str("component", "articles").Logger())

	// --- Handlers ---
	limits := handlers.PageLimits{DefaultSize: cfg.PageDefaultSize, MaxSize: cfg.PageMaxSize}
	handlerLog := log.With().Str("component", "http").Logger()
	authHandler := handlers.NewAuthHandler(authService, handlerLog)
	articleHandler := handlers.NewArticleHandler(articleService, limits, handlerLog)
	userHandler := handlers.NewUserHandler(userService, articleService, handlerLog)
	adminHandler := handlers.NewAdminHandler(userService, articleService, limits, handlerLog)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:               "jurnal",
		ErrorHandler:          handlers.ErrorHandler(handlerLog),
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	// --- Middleware ---
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: log,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// --- API Routes ---
	auth := middleware.AuthRequired(authService, handlerLog)
	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	articleHandler.RegisterRoutes(api, auth)
	userHandler.RegisterRoutes(api, auth)
	adminHandler.RegisterRoutes(api.Group("/admin", auth, middleware.RequireRoles(models.RoleAdmin)))

	return app
}
