package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/decolog/decolog/internal/server/webhook"
	"github.com/decolog/decolog/internal/shared"
)

func (h *LicenseHandler) checkoutWebhookOp() huma.Operation {
	return huma.Operation{
		OperationID: "webhooks-checkout",
		Method:      http.MethodPost,
		Path:        "/v1/webhooks/checkout",
		Summary:     "Receive checkout provider events",
		Description: "Verifies the Deco-Signature header and applies the event. Redelivered events are acknowledged without being applied twice.",
		Tags:        []string{"webhooks"},
	}
}

type checkoutWebhookInput struct {
	Signature string `header:"Deco-Signature" doc:"t=<unix>,v1=<hex HMAC-SHA256>"`
	RawBody   []byte
}

type checkoutWebhookOutput struct {
	Body statusResponse
}

func (h *LicenseHandler) checkoutWebhook(ctx context.Context, input *checkoutWebhookInput) (*checkoutWebhookOutput, error) {
	if len(h.webhookSecret) == 0 {
		return nil, huma.Error400BadRequest("webhook secret is not configured")
	}

	if err := webhook.Verify(h.webhookSecret, input.RawBody, input.Signature, time.Now()); err != nil {
		h.log.Warn(ctx, "rejected webhook delivery", "error", err)
		return nil, huma.Error401Unauthorized("invalid signature")
	}

	event, err := webhook.ParseEvent(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	if err := h.service.ProcessWebhook(ctx, event); err != nil {
		if errors.Is(err, shared.ErrInvalidMode) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error(ctx, "error processing webhook event", "event_id", event.ID, "error", err)
		return nil, err
	}

	h.log.Info(ctx, "processed webhook event", "event_id", event.ID, "event_type", event.Type)
	return &checkoutWebhookOutput{Body: statusResponse{Status: "ok"}}, nil
}
