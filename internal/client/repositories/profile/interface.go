package profile

import (
	"context"

	"github.com/decolog/decolog/internal/client/models"
)

// Repository persists the singleton diver profile: exactly zero or one
// profile exists per device.
type Repository interface {
	// Get returns the profile, or (nil, nil) when none has been saved yet.
	Get(ctx context.Context) (*models.DiverProfile, error)

	// Save replaces the stored profile (insert on first save).
	Save(ctx context.Context, p *models.DiverProfile) error
}
