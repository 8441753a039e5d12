package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/decolog/decolog/internal/logging"
	"github.com/decolog/decolog/internal/server/auth"
	"github.com/decolog/decolog/internal/server/models"
)

type contextKey string

const deviceIDKey contextKey = "deviceID"

// Auth guards snapshot operations. It accepts the device tokens minted by
// the license lookup, which only exist for cloud-tier devices.
type Auth struct {
	secret []byte
	log    logging.Logger
}

func NewAuth(secret []byte, log logging.Logger) *Auth {
	return &Auth{
		secret: secret,
		log:    log.With("component", "auth middleware"),
	}
}

// Middleware validates the Bearer token and puts the device id into the
// request context for handlers to pick up with GetDeviceID.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		if len(header) < 7 || header[:7] != "Bearer " {
			a.unauthorized(ctx)
			return
		}

		deviceID, mode, err := auth.ParseToken(header[7:], a.secret)
		if err != nil {
			a.log.Warn(ctx.Context(), "rejected device token", "error", err)
			a.unauthorized(ctx)
			return
		}

		if mode != models.ModeCloud {
			a.unauthorized(ctx)
			return
		}

		next(huma.WithContext(ctx, WithDeviceID(ctx.Context(), deviceID)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{"error": "Unauthorized"}); err != nil {
		a.log.Error(ctx.Context(), "error writing unauthorized response", "error", err)
	}
}

func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}

func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(deviceIDKey).(string)
	return deviceID, ok
}
