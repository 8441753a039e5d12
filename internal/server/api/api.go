// Package api assembles the license service HTTP API: checkout session
// creation, the checkout provider webhook, license lookups and snapshot
// upload slots. Operations are registered with huma on top of a chi mux so
// the OpenAPI description stays in sync with the handlers.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/decolog/decolog/internal/logging"
	"github.com/decolog/decolog/internal/server/config"
)

type statusResponse struct {
	Status string `json:"status" example:"ok"`
}

// New builds a *chi.Mux with every operation registered.
func New(cfg *config.Config, licenses LicenseServicer, snapshots SnapshotServicer, log logging.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaConfig := huma.DefaultConfig("DecoLog License API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	authMW := NewAuth([]byte(cfg.SecretKey), log)

	NewHealthHandler().SetupRoutes(API)
	NewLicenseHandler(licenses, []byte(cfg.WebhookSecret), log).SetupRoutes(API)
	NewSnapshotHandler(snapshots, log, huma.Middlewares{authMW.Middleware()}).SetupRoutes(API)

	return mux
}
