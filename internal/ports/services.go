package ports

import (
	"context"

	"github.com/seu-repo/smartspeaker-gateway/internal/domain"
)

// IntentDispatcher turns a canonical event into the reply to speak.
type IntentDispatcher interface {
	Dispatch(ctx context.Context, event domain.InboundEvent) domain.SpokenReply
}

// FactProvider supplies the latest blog title. It never fails: any
// upstream problem is reported as ok == false.
type FactProvider interface {
	FetchLatestTitle(ctx context.Context) (title string, ok bool)
}

// TitleSource is the external content source behind FactProvider.
type TitleSource interface {
	LatestTitle(ctx context.Context) (string, error)
}

// Platform pairs the decoder and encoder of one voice platform.
type Platform interface {
	Name() string
	Decode(body []byte, headers map[string]string) (domain.InboundEvent, error)
	Encode(reply domain.SpokenReply) any
}
