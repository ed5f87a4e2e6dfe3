package dialogflow

// WebhookRequest is the subset of the Dialogflow v2 webhook request the
// gateway reads. Everything else in the payload is ignored.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText    string         `json:"queryText"`
	LanguageCode string         `json:"languageCode"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Intent       Intent         `json:"intent"`
}

type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type WebhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}
