package voice

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
	"github.com/seu-repo/smartspeaker-gateway/internal/ports"
)

type intentHandler func(ctx context.Context) string

// Dispatcher resolves canonical events against a fixed intent table.
type Dispatcher struct {
	facts    ports.FactProvider
	messages *Messages
	handlers map[string]intentHandler
	log      *zap.Logger
}

func NewDispatcher(facts ports.FactProvider, messages *Messages, log *zap.Logger) *Dispatcher {
	if messages == nil {
		messages = DefaultTable()
	}

	d := &Dispatcher{
		facts:    facts,
		messages: messages,
		log:      log,
	}
	d.handlers = map[string]intentHandler{
		domain.IntentHello:          d.hello,
		domain.IntentAskLatestTitle: d.latestTitle,
	}
	return d
}

// Dispatch never fails; unknown intents fall back to the not-understood reply.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.InboundEvent) domain.SpokenReply {
	ctx, span := otel.Tracer("voice").Start(ctx, "voice.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("voice.event_kind", event.Kind.String()),
		attribute.String("voice.intent", event.IntentName),
	)

	switch event.Kind {
	case domain.EventSessionStart:
		return domain.SpokenReply{Text: d.messages.Text(domain.MsgIntroduction), EndSession: false}
	case domain.EventIntentInvoked:
		handler, ok := d.handlers[event.IntentName]
		if !ok {
			d.log.Debug("No handler for intent", zap.String("intent", event.IntentName))
			return d.notUnderstood()
		}
		return domain.SpokenReply{Text: handler(ctx), EndSession: true}
	default:
		return d.notUnderstood()
	}
}

func (d *Dispatcher) notUnderstood() domain.SpokenReply {
	return domain.SpokenReply{Text: d.messages.Text(domain.MsgNotUnderstood), EndSession: true}
}

func (d *Dispatcher) hello(ctx context.Context) string {
	return d.messages.Text(domain.MsgHello)
}

func (d *Dispatcher) latestTitle(ctx context.Context) string {
	title, ok := d.facts.FetchLatestTitle(ctx)
	if !ok || title == "" {
		return d.messages.Text(domain.MsgLatestTitleUnknown)
	}
	return d.messages.LatestTitle(title)
}
