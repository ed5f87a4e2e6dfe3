package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/smartspeaker-gateway/internal/ports"
)

// Platforms groups the codec bound to each webhook route.
type Platforms struct {
	Line       ports.Platform
	GoogleHome ports.Platform
	Alexa      ports.Platform
}

// RegisterRoutes mounts the three webhook endpoints on router. guards run
// before each webhook handler.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router, platforms Platforms, guards ...fiber.Handler) {
	route := func(path string, p ports.Platform) {
		chain := append(append([]fiber.Handler{}, guards...), h.Handle(p))
		router.Post(path, chain...)
	}

	route("/line", platforms.Line)
	route("/googlehome", platforms.GoogleHome)
	route("/alexa", platforms.Alexa)
}
