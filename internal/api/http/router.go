package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/token-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/token-auth-service/internal/auth"
	"github.com/spec-kit/token-auth-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Login   *handlers.LoginHandler
	Account *handlers.AccountHandler
	Gate    *auth.Gate
	Metrics *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Health checks and metrics sit in front of the
// gate; every other route passes through it, and only /api requires a
// populated security context.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	app.Use(cfg.Gate.Handle)

	app.Get("/", cfg.Account.Home)
	app.Get("/home", cfg.Account.Home)
	app.Post("/login", cfg.Login.Login)

	api := app.Group("/api", auth.RequireAuthenticated())
	api.Get("/me", cfg.Account.Me)
}
