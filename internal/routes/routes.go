package routes

import (
	"time"

	"github.com/callimard/makemeacube/internal/config"
	"github.com/callimard/makemeacube/internal/handlers"
	"github.com/callimard/makemeacube/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
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

	// Registration and verification — public
	users := api.Group("/users")
	users.Post("/basic-registration", userHandler.BasicRegistration)
	users.Post("/maker-registration", userHandler.MakerRegistration)
	users.Get("/email-verification", userHandler.VerifyEmail)

	// User aggregate — JWT required; services enforce that the caller is
	// the addressed user.
	protected := users.Group("/:userId", middleware.JWTProtected(cfg))
	protected.Get("/", userHandler.GetUser)
	protected.Put("/", userHandler.UpdateUser)
	protected.Post("/addresses", userHandler.AddAddress)
	protected.Put("/addresses/:addressId", userHandler.UpdateAddress)
	protected.Delete("/addresses/:addressId", userHandler.DeleteAddress)
	protected.Post("/maker-tools/printer3ds", userHandler.AddPrinter3D)
	protected.Put("/maker-tools/printer3ds/:toolId", userHandler.UpdatePrinter3D)
	protected.Delete("/maker-tools/:toolId", userHandler.DeleteMakerTool)
	protected.Get("/maker-tools/:toolId/materials/:materialId", userHandler.GetToolMaterial)
}
