package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/newsdash/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	news *handlers.NewsHandler,
	share *handlers.ShareHandler,
	prefs *handlers.PreferencesHandler,
	authMW fiber.Handler,
) {
	app.Get("/", health.Index)

	a := app.Group("/auth")
	a.Post("/signup", auth.Signup)
	a.Post("/login", auth.Login)
	a.Post("/logout", auth.Logout)
	a.Get("/user", auth.User)

	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	api.Get("/news", news.List)

	api.Post("/share", share.Create)
	api.Get("/shared/:shareId", share.Get)

	api.Post("/preferences", authMW, prefs.Save)
	api.Get("/preferences", authMW, prefs.Get)
}
