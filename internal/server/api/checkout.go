package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/decolog/decolog/internal/shared"
)

func (h *LicenseHandler) createCheckoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "checkout-create",
		Method:      http.MethodPost,
		Path:        "/v1/checkout",
		Summary:     "Create a checkout session",
		Description: "Returns a hosted checkout URL for upgrading the device to a paid tier.",
		Tags:        []string{"checkout"},
	}
}

type createCheckoutInput struct {
	Body checkoutRequest
}

type checkoutRequest struct {
	DeviceID string `json:"device_id" minLength:"1" doc:"Device identity"`
	Mode     string `json:"mode" doc:"Tier to purchase: pro or cloud"`
}

type createCheckoutOutput struct {
	Body checkoutResponse
}

type checkoutResponse struct {
	URL string `json:"url" doc:"Hosted checkout page"`
}

func (h *LicenseHandler) createCheckout(ctx context.Context, input *createCheckoutInput) (*createCheckoutOutput, error) {
	url, err := h.service.CreateCheckout(ctx, input.Body.DeviceID, input.Body.Mode)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrInvalidMode):
			return nil, huma.Error400BadRequest(fmt.Sprintf("mode %q cannot be purchased", input.Body.Mode))
		case errors.Is(err, shared.ErrNotConfigured):
			return nil, huma.Error400BadRequest("no payment provider is configured")
		}
		h.log.Error(ctx, "error creating checkout session", "error", err)
		return nil, err
	}

	return &createCheckoutOutput{Body: checkoutResponse{URL: url}}, nil
}
