package paystack

import "encoding/json"

// Webhook event keys the backend cares about.
const EventChargeSuccess = "charge.success"

// WebhookEvent is the payload delivered to the webhook endpoint. Amount is
// in minor units, matching the verify API.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Channel   string `json:"channel"`
	} `json:"data"`
}

func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
