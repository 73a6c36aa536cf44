package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/newsdash/api/http/presenter"
	"github.com/artem13815/newsdash/pkg/auth"
	"github.com/artem13815/newsdash/pkg/security/jwt"
)

type AuthHandler struct {
	useCase      auth.AuthUseCase
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, cookieSecure: cookieSecure, log: log}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string        `json:"message"`
	User    auth.Identity `json:"user"`
}

// Signup handles user registration and starts a session.
// @Summary Sign up
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body signupRequest true "signup payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	session, err := h.useCase.SignUp(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooLong):
			return presenter.Error(c, http.StatusBadRequest, "Password too long (max 72 bytes)")
		case errors.Is(err, auth.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "User already exists")
		default:
			h.log.Error("signup failed", zap.Error(err))
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}

	h.setSessionCookie(c, session)
	return presenter.JSON(c, http.StatusCreated, authResponse{Message: "Signup successful", User: session.Identity})
}

// Login checks credentials and starts a session.
// @Summary Log in
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	session, err := h.useCase.LogIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "Invalid email or password")
		}
		h.log.Error("login failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}

	h.setSessionCookie(c, session)
	return presenter.JSON(c, http.StatusOK, authResponse{Message: "Login successful", User: session.Identity})
}

// Logout ends the caller's session. It always succeeds.
// @Summary Log out
// @Tags    auth
// @Produce json
// @Success 200 {object} presenter.MessageResponse
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.useCase.LogOut(c.UserContext(), jwt.TokenFromRequest(c)); err != nil {
		h.log.Warn("logout: session not revoked", zap.Error(err))
	}
	h.clearSessionCookie(c)
	return presenter.JSON(c, http.StatusOK, presenter.MessageResponse{Message: "Logged out successfully"})
}

// User returns the identity bound to the caller's session.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} auth.Identity
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/user [get]
func (h *AuthHandler) User(c *fiber.Ctx) error {
	identity, err := h.useCase.CurrentUser(c.UserContext(), jwt.TokenFromRequest(c))
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			return presenter.Error(c, http.StatusUnauthorized, "Not authenticated")
		}
		h.log.Error("resolve session failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to resolve session")
	}
	return presenter.JSON(c, http.StatusOK, identity)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, s auth.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.SessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     jwt.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
