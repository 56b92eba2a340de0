package response

type WebhookAck struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}
