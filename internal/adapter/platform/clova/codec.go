// Package clova speaks the LINE Clova Extension Kit (CEK) protocol.
package clova

import (
	"github.com/seu-repo/smartspeaker-gateway/internal/adapter/platform"
	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

const Name = "clova"

type Platform struct {
	verifier Verifier
	lang     string
}

// New returns the CEK codec. lang fills the outputSpeech lang field.
func New(verifier Verifier, lang string) *Platform {
	if lang == "" {
		lang = "ja"
	}
	return &Platform{verifier: verifier, lang: lang}
}

func (p *Platform) Name() string { return Name }

// Decode verifies the signature before it looks at a single field.
func (p *Platform) Decode(body []byte, headers map[string]string) (domain.InboundEvent, error) {
	if err := p.verifier.Verify(body, platform.Header(headers, SignatureHeader)); err != nil {
		return domain.InboundEvent{}, err
	}

	var req Request
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
	return Response{
		Version:           "1.0",
		SessionAttributes: map[string]any{},
		Response: ResponseBody{
			OutputSpeech: OutputSpeech{
				Type: "SimpleSpeech",
				Values: SpeechValue{
					Type:  "PlainText",
					Lang:  p.lang,
					Value: reply.Text,
				},
			},
			Card:             map[string]any{},
			Directives:       []any{},
			ShouldEndSession: reply.EndSession,
		},
	}
}
