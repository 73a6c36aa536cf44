package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Use installs the common middleware chain: request id, access log, panic
// recovery and CORS for the dashboard front end.
func Use(app *fiber.App, log *zap.Logger, origins []string) {
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	app.Use(CORS(origins))
}

// DefaultOrigins is used when no usable origin is configured.
var DefaultOrigins = []string{"http://localhost:3000"}

// CORS allows credentialed requests from the configured origins. A wildcard
// origin disables credentials since browsers reject that combination.
func CORS(origins []string) fiber.Handler {
	origins = cleanOrigins(origins)
	wildcard := slices.Contains(origins, "*")
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: !wildcard,
		MaxAge:           3600,
	})
}

func cleanOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return DefaultOrigins
	}
	return out
}
