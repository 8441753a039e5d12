package webhook

import (
	"errors"
	"testing"

	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent_CheckoutCompleted(t *testing.T) {
	body := []byte(`{"id":"evt_1","type":"checkout.completed","data":{"device_id":"device-123","mode":"cloud"}}`)

	event, err := ParseEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	assert.Equal(t, "device-123", event.Data.DeviceID)
	assert.Equal(t, models.ModeCloud, event.Data.Mode)
}

func TestParseEvent_SubscriptionCanceledNeedsNoMode(t *testing.T) {
	body := []byte(`{"id":"evt_2","type":"subscription.canceled","data":{"device_id":"device-123"}}`)

	event, err := ParseEvent(body)
	require.NoError(t, err)
	assert.Equal(t, EventSubscriptionCanceled, event.Type)
	assert.Empty(t, event.Data.Mode)
}

func TestParseEvent_UnknownTypePassesThrough(t *testing.T) {
	body := []byte(`{"id":"evt_3","type":"invoice.paid","data":{"device_id":"device-123"}}`)

	event, err := ParseEvent(body)
	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", event.Type)
}

func TestParseEvent_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing id", `{"type":"checkout.completed","data":{"device_id":"d","mode":"pro"}}`},
		{"missing type", `{"id":"evt_4","data":{"device_id":"d"}}`},
		{"missing device id", `{"id":"evt_5","type":"checkout.completed","data":{"mode":"pro"}}`},
		{"completed with training mode", `{"id":"evt_6","type":"checkout.completed","data":{"device_id":"d","mode":"training"}}`},
		{"completed with unknown mode", `{"id":"evt_7","type":"checkout.completed","data":{"device_id":"d","mode":"platinum"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidEvent))
		})
	}
}
