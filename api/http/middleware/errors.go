package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/newsdash/api/http/presenter"
)

// AvailableEndpoints is listed in the 404 body.
var AvailableEndpoints = []string{
	"/ (GET) - API info",
	"/api/health (GET) - Health check",
	"/api/news (GET) - Get news articles",
	"/api/share (POST) - Share article",
	"/api/shared/:shareId (GET) - Read shared article",
	"/auth/signup (POST) - Sign up with email/password",
	"/auth/login (POST) - Log in with email/password",
	"/auth/logout (POST) - Log out",
	"/auth/user (GET) - Current user",
}

type notFoundResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

// ErrorHandler renders every error returned by a handler, recovered panics
// included, as {"error": "..."}.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		switch {
		case code == fiber.StatusNotFound:
			return presenter.JSON(c, code, notFoundResponse{
				Error:              "Endpoint not found",
				AvailableEndpoints: AvailableEndpoints,
			})
		case code >= fiber.StatusInternalServerError:
			log.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return presenter.Error(c, code, "internal server error")
		default:
			return presenter.Error(c, code, fe.Message)
		}
	}
}
