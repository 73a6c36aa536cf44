package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/newsdash/pkg/auth"
)

// SessionCookie is the cookie that carries the session token.
const SessionCookie = "session"

const identityKey = "identity"

// TokenFromRequest returns the session token from the session cookie, falling
// back to the Authorization header. Both "Bearer <token>" and "<token>" are
// accepted.
func TokenFromRequest(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies(SessionCookie)); v != "" {
		return v
	}
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return ""
	}
	if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return authHeader
}

// NewAuthMiddleware returns a Fiber middleware that resolves the session token
// to an identity. On success the identity is stored in c.Locals.
func NewAuthMiddleware(uc auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := uc.CurrentUser(c.UserContext(), TokenFromRequest(c))
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve session"})
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity placed by NewAuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}
