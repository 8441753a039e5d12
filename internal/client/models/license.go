// Package models defines client-side data models used by the DecoLog CLI.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/decolog/decolog/internal/shared"
)

// LicenseMode is the feature-gating tier of the installation.
type LicenseMode string

const (
	// LicenseModeTraining is the free tier: local records only, capped.
	LicenseModeTraining LicenseMode = "training"
	// LicenseModePro lifts the record cap, local only.
	LicenseModePro LicenseMode = "pro"
	// LicenseModeCloud adds cloud backup on top of pro.
	LicenseModeCloud LicenseMode = "cloud"
)

// ParseLicenseMode validates a user- or server-supplied mode string.
func ParseLicenseMode(s string) (LicenseMode, error) {
	switch LicenseMode(s) {
	case LicenseModeTraining, LicenseModePro, LicenseModeCloud:
		return LicenseMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", shared.ErrInvalidMode, s)
}

// LicenseState is the persisted license object: current mode plus the
// timestamp of the first move away from the free tier. ActivatedAt is set
// once and never cleared, not even by a downgrade.
type LicenseState struct {
	Mode        LicenseMode
	ActivatedAt *time.Time
}

// licenseStateDTO is the wire/persisted shape. The key is "tier" for
// compatibility with state written by earlier releases.
type licenseStateDTO struct {
	Tier        string     `json:"tier"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
}

// DefaultLicenseState is the state of a fresh install.
func DefaultLicenseState() LicenseState {
	return LicenseState{Mode: LicenseModeTraining}
}

// DecodeLicenseState decodes the persisted license blob into the canonical
// LicenseState. Earlier releases wrote the tier vocabulary
// {training, pro_local, pro_cloud}; those values are migrated losslessly
// here, so no other code ever sees the legacy strings. The caller is
// expected to persist the canonical shape on the next save.
func DecodeLicenseState(b []byte) (LicenseState, error) {
	var dto licenseStateDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return LicenseState{}, fmt.Errorf("decoding license state: %w", err)
	}

	var mode LicenseMode
	switch dto.Tier {
	case "training":
		mode = LicenseModeTraining
	case "pro", "pro_local":
		mode = LicenseModePro
	case "cloud", "pro_cloud":
		mode = LicenseModeCloud
	default:
		return LicenseState{}, fmt.Errorf("%w: %q", shared.ErrInvalidMode, dto.Tier)
	}

	return LicenseState{Mode: mode, ActivatedAt: dto.ActivatedAt}, nil
}

// EncodeLicenseState marshals the canonical persisted shape.
func EncodeLicenseState(s LicenseState) ([]byte, error) {
	return json.Marshal(licenseStateDTO{
		Tier:        string(s.Mode),
		ActivatedAt: s.ActivatedAt,
	})
}
