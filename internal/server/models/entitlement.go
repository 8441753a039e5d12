// Package models holds the license service's persistence models.
package models

import "time"

// Entitlement statuses. A canceled entitlement keeps its purchased mode so a
// later re-activation restores the same tier.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// License modes, mirroring the tiers the client knows.
const (
	ModeTraining = "training"
	ModePro      = "pro"
	ModeCloud    = "cloud"
)

// ValidPurchaseMode reports whether mode names a tier that can be bought.
// Training is the implicit starting tier and is never purchased.
func ValidPurchaseMode(mode string) bool {
	return mode == ModePro || mode == ModeCloud
}

// Entitlement is the per-device license record. One row per device; checkout
// completion and cancellation both upsert it.
type Entitlement struct {
	DeviceID    string
	Mode        string
	Status      string
	ActivatedAt *time.Time
	UpdatedAt   time.Time
}

// EffectiveMode is the tier the device actually gets: the purchased mode
// while the entitlement is active, training otherwise.
func (e *Entitlement) EffectiveMode() string {
	if e.Status == StatusActive {
		return e.Mode
	}
	return ModeTraining
}
