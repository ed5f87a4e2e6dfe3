package clova

import "encoding/json"

const (
	RequestTypeLaunch = "LaunchRequest"
	RequestTypeIntent = "IntentRequest"
)

// Request is the CEK request envelope. Session and context are kept raw.
type Request struct {
	Version string          `json:"version"`
	Session json.RawMessage `json:"session,omitempty"`
	Context json.RawMessage `json:"context,omitempty"`
	Request RequestBody     `json:"request"`
}

type RequestBody struct {
	Type   string  `json:"type"`
	Intent *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Response is the CEK response envelope.
type Response struct {
	Version           string         `json:"version"`
	SessionAttributes map[string]any `json:"sessionAttributes"`
	Response          ResponseBody   `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     OutputSpeech   `json:"outputSpeech"`
	Card             map[string]any `json:"card"`
	Directives       []any          `json:"directives"`
	ShouldEndSession bool           `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type   string      `json:"type"`
	Values SpeechValue `json:"values"`
}

type SpeechValue struct {
	Type  string `json:"type"`
	Lang  string `json:"lang"`
	Value string `json:"value"`
}
