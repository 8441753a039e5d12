package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/decolog/decolog/internal/logging"
	"github.com/decolog/decolog/internal/server/models"
	"github.com/decolog/decolog/internal/server/webhook"
	"github.com/decolog/decolog/internal/shared"
)

// LicenseServicer is the slice of the license service the handlers need.
type LicenseServicer interface {
	CreateCheckout(ctx context.Context, deviceID string, mode string) (string, error)
	Entitlement(ctx context.Context, deviceID string) (*models.Entitlement, string, error)
	ProcessWebhook(ctx context.Context, event *webhook.Event) error
}

// LicenseHandler serves checkout creation, license lookups and the
// checkout provider webhook.
type LicenseHandler struct {
	service       LicenseServicer
	webhookSecret []byte
	log           logging.Logger
}

func NewLicenseHandler(service LicenseServicer, webhookSecret []byte, log logging.Logger) *LicenseHandler {
	return &LicenseHandler{
		service:       service,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

func (h *LicenseHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createCheckoutOp(), h.createCheckout)
	huma.Register(api, h.getLicenseOp(), h.getLicense)
	huma.Register(api, h.checkoutWebhookOp(), h.checkoutWebhook)
}

func (h *LicenseHandler) getLicenseOp() huma.Operation {
	return huma.Operation{
		OperationID: "licenses-get",
		Method:      http.MethodGet,
		Path:        "/v1/licenses/{deviceID}",
		Summary:     "Get a device's license",
		Tags:        []string{"licenses"},
	}
}

type getLicenseInput struct {
	DeviceID string `path:"deviceID" doc:"Device identity"`
}

type getLicenseOutput struct {
	Body licenseResponse
}

type licenseResponse struct {
	DeviceID    string     `json:"device_id"`
	Mode        string     `json:"mode" doc:"Effective license mode; canceled licenses report training"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	Token       string     `json:"token,omitempty" doc:"Device token, minted for cloud licenses only"`
}

func (h *LicenseHandler) getLicense(ctx context.Context, input *getLicenseInput) (*getLicenseOutput, error) {
	entitlement, token, err := h.service.Entitlement(ctx, input.DeviceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, huma.Error404NotFound("no license on record for this device")
		}
		h.log.Error(ctx, "error loading entitlement", "error", err)
		return nil, err
	}

	return &getLicenseOutput{
		Body: licenseResponse{
			DeviceID:    entitlement.DeviceID,
			Mode:        entitlement.EffectiveMode(),
			Status:      entitlement.Status,
			ActivatedAt: entitlement.ActivatedAt,
			Token:       token,
		},
	}, nil
}
