package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/shared"
)

// Event types delivered by the checkout provider.
const (
	EventCheckoutCompleted    = "checkout.completed"
	EventSubscriptionCanceled = "subscription.canceled"
)

// Event is a checkout provider webhook payload.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the device the event applies to and, for completed
// checkouts, the purchased mode.
type EventData struct {
	DeviceID string `json:"device_id"`
	Mode     string `json:"mode"`
}

// ParseEvent decodes a webhook body and validates the fields the license
// service depends on. Unknown event types pass through so new provider
// events can be acknowledged without a deploy.
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidEvent, err)
	}

	if event.ID == "" {
		return nil, fmt.Errorf("%w: missing id", shared.ErrInvalidEvent)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("%w: missing type", shared.ErrInvalidEvent)
	}
	if event.Data.DeviceID == "" {
		return nil, fmt.Errorf("%w: missing device id", shared.ErrInvalidEvent)
	}
	if event.Type == EventCheckoutCompleted && !models.ValidPurchaseMode(event.Data.Mode) {
		return nil, fmt.Errorf("%w: mode %q is not purchasable", shared.ErrInvalidEvent, event.Data.Mode)
	}

	return &event, nil
}
