// Package metadata is the single persistence adapter for the small persisted
// app state: device id, license state, sync config and units preference, all
// stored as opaque values in one key/value table. Storage keys live here as
// constants so no other package carries key string literals.
package metadata

import (
	"context"
)

// Storage keys for the persisted app state.
const (
	KeyDeviceID     = "device_id"
	KeyLicenseState = "license_state"
	KeyLicenseToken = "license_token"
	KeySyncConfig   = "sync_config"
	KeyUnits        = "units"
)

type Repository interface {
	// Get returns the stored value, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
