package alexa

import "encoding/json"

const (
	RequestTypeLaunch = "LaunchRequest"
	RequestTypeIntent = "IntentRequest"
)

// SkillRequest is the Alexa skill request envelope.
type SkillRequest struct {
	Version string          `json:"version"`
	Session json.RawMessage `json:"session,omitempty"`
	Context json.RawMessage `json:"context,omitempty"`
	Request RequestBody     `json:"request"`
}

type RequestBody struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale"`
	Intent    *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name               string          `json:"name"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
	Slots              map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type SkillResponse struct {
	Version  string       `json:"version"`
	Response ResponseBody `json:"response"`
}

type ResponseBody struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
