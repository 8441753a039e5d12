package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *HealthHandler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check endpoint",
		Tags:        []string{"health"},
	}
}

type healthOutput struct {
	Body statusResponse
}

func (h *HealthHandler) healthCheck(_ context.Context, _ *struct{}) (*healthOutput, error) {
	return &healthOutput{Body: statusResponse{Status: "ok"}}, nil
}
