package domain

import "errors"

// EventKind classifies what a voice platform asked for.
type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventSessionStart
	EventIntentInvoked
)

func (k EventKind) String() string {
	switch k {
	case EventSessionStart:
		return "session_start"
	case EventIntentInvoked:
		return "intent"
	default:
		return "unrecognized"
	}
}

// Canonical intent names shared by every platform.
const (
	IntentHello          = "HelloIntent"
	IntentAskLatestTitle = "AskLatestBlogTitleIntent"
)

// InboundEvent is the platform-agnostic view of one webhook request.
type InboundEvent struct {
	Kind       EventKind `json:"kind"`
	IntentName string    `json:"intent_name,omitempty"`
}

func SessionStart() InboundEvent {
	return InboundEvent{Kind: EventSessionStart}
}

func IntentInvoked(name string) InboundEvent {
	return InboundEvent{Kind: EventIntentInvoked, IntentName: name}
}

func Unrecognized() InboundEvent {
	return InboundEvent{Kind: EventUnrecognized}
}

// SpokenReply is the text a platform should speak back.
type SpokenReply struct {
	Text       string `json:"text"`
	EndSession bool   `json:"end_session"`
}

var (
	// ErrAuth means the request signature could not be verified.
	ErrAuth = errors.New("request signature verification failed")
	// ErrDecode means the request envelope could not be parsed.
	ErrDecode = errors.New("malformed request envelope")
	// ErrDependency means the content source failed or timed out.
	ErrDependency = errors.New("content source unavailable")
)
