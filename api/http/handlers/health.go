package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/newsdash/pkg/health"
)

const (
	serviceName = "News Dashboard API"
	version     = "1.0.0"
)

// HealthHandler serves the API info document, liveness and readiness probes.
type HealthHandler struct {
	svc health.ReadinessUseCase
	now func() time.Time
}

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{svc: svc, now: time.Now}
}

// Index: API info.
// @Summary API info
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  / [get]
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":          "ok",
		"message":         "News Dashboard API is running",
		"version":         version,
		"health_endpoint": "/api/health",
		"documentation":   "Available endpoints: /api/news, /api/health, /auth/signup, /auth/login, /auth/logout, /auth/user",
	})
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": h.now().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// Ready: readiness check with storage pings.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router  /api/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": h.svc.Report(ctx),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
