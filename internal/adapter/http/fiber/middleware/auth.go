package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const FunctionKeyHeader = "X-Functions-Key"

// FunctionKey guards the webhook routes with a shared key, taken from the
// X-Functions-Key header or the "code" query parameter. An empty key
// disables the check.
func FunctionKey(key string) fiber.Handler {
	expected := []byte(key)

	return func(c *fiber.Ctx) error {
		if len(expected) == 0 {
			return c.Next()
		}

		provided := c.Get(FunctionKeyHeader)
		if provided == "" {
			provided = c.Query("code")
		}
		if provided == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing function key"})
		}
		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid function key"})
		}

		return c.Next()
	}
}
