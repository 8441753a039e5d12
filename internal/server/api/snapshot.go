package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/decolog/decolog/internal/logging"
	"github.com/decolog/decolog/internal/shared"
)

// SnapshotServicer is the slice of the snapshot service the handlers need.
type SnapshotServicer interface {
	RequestUpload(ctx context.Context, deviceID string) (string, string, error)
	Confirm(ctx context.Context, deviceID string, key string) error
}

// SnapshotHandler serves upload slot requests and confirmations. Both
// operations sit behind the device token middleware.
type SnapshotHandler struct {
	service    SnapshotServicer
	log        logging.Logger
	middleware huma.Middlewares
}

func NewSnapshotHandler(service SnapshotServicer, log logging.Logger, mws huma.Middlewares) *SnapshotHandler {
	return &SnapshotHandler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *SnapshotHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.requestUploadOp(), h.requestUpload)
	huma.Register(api, h.confirmOp(), h.confirm)
}

func (h *SnapshotHandler) requestUploadOp() huma.Operation {
	return huma.Operation{
		OperationID: "snapshots-request-upload",
		Method:      http.MethodPost,
		Path:        "/v1/snapshots",
		Summary:     "Request a snapshot upload slot",
		Description: "Returns a presigned PUT URL. Upload the dive log snapshot there, then confirm the key.",
		Tags:        []string{"snapshots"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

type requestUploadInput struct {
	Body snapshotRequest
}

type snapshotRequest struct {
	DeviceID string `json:"device_id" minLength:"1" doc:"Device identity"`
}

type requestUploadOutput struct {
	Body snapshotResponse
}

type snapshotResponse struct {
	URL string `json:"url" doc:"Presigned PUT URL"`
	Key string `json:"key" doc:"Storage key to confirm once uploaded"`
}

func (h *SnapshotHandler) requestUpload(ctx context.Context, input *requestUploadInput) (*requestUploadOutput, error) {
	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if input.Body.DeviceID != deviceID {
		return nil, huma.Error403Forbidden("token does not match device")
	}

	url, key, err := h.service.RequestUpload(ctx, deviceID)
	if err != nil {
		h.log.Error(ctx, "error presigning snapshot upload", "device_id", deviceID, "error", err)
		return nil, err
	}

	return &requestUploadOutput{Body: snapshotResponse{URL: url, Key: key}}, nil
}

func (h *SnapshotHandler) confirmOp() huma.Operation {
	return huma.Operation{
		OperationID: "snapshots-confirm",
		Method:      http.MethodPost,
		Path:        "/v1/snapshots/confirm",
		Summary:     "Confirm a snapshot upload",
		Tags:        []string{"snapshots"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

type confirmInput struct {
	Body confirmRequest
}

type confirmRequest struct {
	DeviceID string `json:"device_id" minLength:"1" doc:"Device identity"`
	Key      string `json:"key" minLength:"1" doc:"Storage key returned by the upload request"`
}

type confirmOutput struct {
	Body statusResponse
}

func (h *SnapshotHandler) confirm(ctx context.Context, input *confirmInput) (*confirmOutput, error) {
	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if input.Body.DeviceID != deviceID {
		return nil, huma.Error403Forbidden("token does not match device")
	}

	if err := h.service.Confirm(ctx, deviceID, input.Body.Key); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, huma.Error404NotFound("no pending upload with this key")
		}
		h.log.Error(ctx, "error confirming snapshot upload", "device_id", deviceID, "error", err)
		return nil, err
	}

	return &confirmOutput{Body: statusResponse{Status: "ok"}}, nil
}
