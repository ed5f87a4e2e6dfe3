// Package alexa speaks the Alexa Skills Kit custom skill protocol.
package alexa

import (
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform"
	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

const Name = "alexa"

type Platform struct{}

func New() *Platform {
	return &Platform{}
}

func (p *Platform) Name() string { return Name }

func (p *Platform) Decode(body []byte, headers map[string]string) (domain.InboundEvent, error) {
	var req SkillRequest
	if err := platform.DecodeJSON(Name, body, &req); err != nil {
		return domain.InboundEvent{}, err
	}

	switch req.Request.Type {
	case RequestTypeLaunch:
		return domain.SessionStart(), nil
	case RequestTypeIntent:
		if req.Request.Intent == nil || req.Request.Intent.Name == "" {
			return domain.Unrecognized(), nil
		}
		return domain.IntentInvoked(req.Request.Intent.Name), nil
	default:
		return domain.Unrecognized(), nil
	}
}

func (p *Platform) Encode(reply domain.SpokenReply) any {
	return SkillResponse{
		Version: "1.0",
		Response: ResponseBody{
			OutputSpeech: &OutputSpeech{
				Type: "PlainText",
				Text: reply.Text,
			},
			ShouldEndSession: reply.EndSession,
		},
	}
}
