package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

// CircuitBreaker sheds load with 503 once handler errors pile up.
func CircuitBreaker(cfg config.CircuitBreakerConfig, log *zap.Logger) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	cb := circuitbreaker.New("smartspeaker-api", cfg, log)

	return func(c *fiber.Ctx) error {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, c.Next()
		})

		if circuitbreaker.IsOpen(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		return err
	}
}
