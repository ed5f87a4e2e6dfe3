package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

const (
	defaultCORSMethods = "GET,POST,OPTIONS"
	defaultCORSHeaders = "Origin,Content-Type,Accept," + RequestIDHeader + "," + FunctionKeyHeader + ",SignatureCEK"
	defaultCORSMaxAge  = 86400
)

// NewCORS lets browser-based consoles (Dialogflow test panel, local tooling)
// call the webhooks. Empty lists fall back to the webhook defaults.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	maxAge := defaultCORSMaxAge
	if cfg.MaxAge > 0 {
		maxAge = cfg.MaxAge
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     joinOr(cfg.AllowedOrigins, "*"),
		AllowMethods:     joinOr(cfg.AllowedMethods, defaultCORSMethods),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, defaultCORSHeaders),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, RequestIDHeader),
		AllowCredentials: cfg.Credentials,
		MaxAge:           maxAge,
	})
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ",")
}
