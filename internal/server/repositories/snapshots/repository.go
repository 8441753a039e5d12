package snapshots

import (
	"context"

	"github.com/decolog/decolog/internal/server/models"
)

type Repository interface {
	// Create records a pending upload slot. The snapshot's ID is filled in.
	Create(ctx context.Context, snap *models.Snapshot) error

	// MarkUploaded flips the device's snapshot with the given storage key to
	// uploaded. shared.ErrNotFound when no such pending slot exists.
	MarkUploaded(ctx context.Context, deviceID, storageKey string) error
}
