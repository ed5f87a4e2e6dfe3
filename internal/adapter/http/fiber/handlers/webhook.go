package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
	"github.com/seu-repo/smartspeaker-gateway/internal/observability/telemetry"
	"github.com/seu-repo/smartspeaker-gateway/internal/ports"
)

// WebhookHandler runs one platform's decode, dispatch, encode cycle.
type WebhookHandler struct {
	dispatcher ports.IntentDispatcher
	log        *zap.Logger
}

func NewWebhookHandler(dispatcher ports.IntentDispatcher, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

// Handle builds the fiber handler for platform p. Decoding always happens
// before dispatch, so a rejected request never reaches the dispatcher.
func (h *WebhookHandler) Handle(p ports.Platform) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		ctx, span := otel.Tracer("webhook").Start(c.UserContext(), "webhook."+p.Name(),
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		event, err := p.Decode(c.Body(), requestHeaders(c))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return h.reject(c, p.Name(), err, start)
		}
		span.SetAttributes(
			attribute.String("voice.event", event.Kind.String()),
			attribute.String("voice.intent", event.IntentName),
		)

		reply := h.dispatcher.Dispatch(ctx, event)
		if event.Kind == domain.EventIntentInvoked {
			telemetry.IntentsDispatchedTotal.WithLabelValues(event.IntentName).Inc()
		}

		h.observe(p.Name(), event.Kind.String(), fiber.StatusOK, start)
		h.log.Info("Webhook handled",
			zap.String("platform", p.Name()),
			zap.String("event", event.Kind.String()),
			zap.String("intent", event.IntentName),
			zap.Bool("end_session", reply.EndSession),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetRequestID(c)),
		)

		return c.Status(fiber.StatusOK).JSON(p.Encode(reply))
	}
}

func (h *WebhookHandler) reject(c *fiber.Ctx, platform string, err error, start time.Time) error {
	status := fiber.StatusInternalServerError
	message := "Failed to process request"

	switch {
	case errors.Is(err, domain.ErrAuth):
		status = fiber.StatusUnauthorized
		message = "Invalid request signature"
	case errors.Is(err, domain.ErrDecode):
		status = fiber.StatusBadRequest
		message = "Invalid request body"
	}

	h.observe(platform, "rejected", status, start)
	h.log.Warn("Webhook rejected",
		zap.String("platform", platform),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", middleware.GetRequestID(c)),
	)

	if status == fiber.StatusInternalServerError {
		return err
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (h *WebhookHandler) observe(platform, event string, status int, start time.Time) {
	telemetry.WebhookRequestsTotal.WithLabelValues(platform, event, strconv.Itoa(status)).Inc()
	telemetry.WebhookLatency.WithLabelValues(platform).Observe(time.Since(start).Seconds())
}

// requestHeaders flattens the request headers, keeping the first value of each.
func requestHeaders(c *fiber.Ctx) map[string]string {
	headers := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		k := string(key)
		if _, seen := headers[k]; !seen {
			headers[k] = string(value)
		}
	})
	return headers
}
