package client

import (
	"context"
	"time"

	"github.com/decolog/decolog/internal/client/models"
)

// Entitlement statuses the license service reports for a device.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// License is the entitlement the license service holds for a device.
type License struct {
	DeviceID    string
	Mode        models.LicenseMode
	Status      string
	ActivatedAt *time.Time
	// Token is a signed device license token, required for snapshot upload.
	Token string
}

// SnapshotTarget is a presigned upload slot for one snapshot.
type SnapshotTarget struct {
	URL string
	Key string
}

// Client is the transport-agnostic contract to the DecoLog license service.
type Client interface {
	// CreateCheckoutSession asks the service for a hosted-checkout redirect
	// URL for the given tier. The caller only ever sees {url} or an error.
	CreateCheckoutSession(ctx context.Context, deviceID string, mode models.LicenseMode) (string, error)

	// GetLicense returns the device's current entitlement, or
	// shared.ErrNotFound when the service has never seen the device.
	GetLicense(ctx context.Context, deviceID string) (*License, error)

	// RequestSnapshotUpload asks for a presigned PUT target for a snapshot.
	RequestSnapshotUpload(ctx context.Context, deviceID, token string) (*SnapshotTarget, error)

	// ConfirmSnapshot marks a previously requested snapshot as uploaded.
	ConfirmSnapshot(ctx context.Context, deviceID, token, key string) error
}
