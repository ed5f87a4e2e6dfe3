// Package dialogflow speaks the Dialogflow v2 fulfillment webhook protocol.
package dialogflow

import (
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform"
	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

const (
	Name                 = "dialogflow"
	DefaultWelcomeIntent = "Default Welcome Intent"
)

type Platform struct {
	welcomeIntent string
}

// New returns the Dialogflow codec. welcomeIntent is the display name that opens a session.
func New(welcomeIntent string) *Platform {
	if welcomeIntent == "" {
		welcomeIntent = DefaultWelcomeIntent
	}
	return &Platform{welcomeIntent: welcomeIntent}
}

func (p *Platform) Name() string { return Name }

func (p *Platform) Decode(body []byte, headers map[string]string) (domain.InboundEvent, error) {
	var req WebhookRequest
	if err := platform.DecodeJSON(Name, body, &req); err != nil {
		return domain.InboundEvent{}, err
	}

	switch name := req.QueryResult.Intent.DisplayName; name {
	case "":
		return domain.Unrecognized(), nil
	case p.welcomeIntent:
		return domain.SessionStart(), nil
	default:
		return domain.IntentInvoked(name), nil
	}
}

func (p *Platform) Encode(reply domain.SpokenReply) any {
	return WebhookResponse{FulfillmentText: reply.Text}
}
