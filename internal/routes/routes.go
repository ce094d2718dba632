package routes

import (
	"time"

	"github.com/errboardhq/errboard/internal/config"
	"github.com/errboardhq/errboard/internal/handlers"
	"github.com/errboardhq/errboard/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	employeesHandler *handlers.EmployeesHandler,
	categoriesHandler *handlers.CategoriesHandler,
	typesHandler *handlers.TypesHandler,
	logsHandler *handlers.LogsHandler,
	reportsHandler *handlers.ReportsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Dashboard reads (JWT required) - apply middleware to individual routes
	// so it never touches the public routes above
	api.Get("/employees", middleware.JWTProtected(cfg), employeesHandler.List)
	api.Get("/categories", middleware.JWTProtected(cfg), categoriesHandler.List)
	api.Get("/error-types", middleware.JWTProtected(cfg), typesHandler.List)
	api.Get("/reports/monthly", middleware.JWTProtected(cfg), reportsHandler.Monthly)

	// Admin mutations (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/users", authHandler.Register)

	admin.Post("/employees", employeesHandler.Create)
	admin.Delete("/employees/:id", employeesHandler.Delete)

	admin.Post("/categories", categoriesHandler.Create)
	admin.Put("/categories/:id", categoriesHandler.Rename)
	admin.Delete("/categories/:id", categoriesHandler.Delete)

	admin.Post("/error-types", typesHandler.Create)
	admin.Delete("/error-types/:id", typesHandler.Delete)

	admin.Post("/error-logs", logsHandler.Create)
	admin.Delete("/error-logs/:id", logsHandler.Delete)
}
