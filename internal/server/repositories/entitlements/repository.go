package entitlements

import (
	"context"
	"time"

	"github.com/decolog/decolog/internal/server/models"
)

type Repository interface {
	// Activate upserts an active entitlement for the device. activated_at is
	// set on the first activation only and survives later upserts.
	Activate(ctx context.Context, deviceID, mode string, at time.Time) error

	// Cancel marks the device's entitlement canceled, creating the row when
	// the device was never activated. The purchased mode is kept.
	Cancel(ctx context.Context, deviceID string) error

	// GetByDeviceID returns the entitlement, or shared.ErrNotFound when the
	// service has never seen the device.
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Entitlement, error)
}
