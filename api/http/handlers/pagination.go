package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewsAPI rejects page sizes above 100.
const maxPageSize = 100

func parsePageSize(c *fiber.Ctx, def int) int {
	if v := strings.TrimSpace(c.Query("pageSize")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			return n
		}
	}
	return def
}
