// Package models defines client-side data models used by the DecoLog CLI.
package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Breathing gas labels. Anything else is a nitrox string in the EANnn form,
// normalized by NormalizeGas.
const (
	GasAir   = "AIR"
	GasEan32 = "EAN32"
)

const (
	// DefaultCylinderLiters is used when a dive form leaves the cylinder
	// size blank. 11.1 L is the common aluminum 80 cuft tank.
	DefaultCylinderLiters = 11.1

	// PlaceholderSite is stored when a dive is saved with a blank site.
	PlaceholderSite = "Unnamed site"
)

var ErrInvalidGas = errors.New("gas must be AIR or EANnn")

// DiveRecord is one logged dive, persisted locally. The JSON shape is also
// the export/upload wire shape, so the tags are part of the contract.
type DiveRecord struct {
	// ID is assigned by the store on creation; monotonic and unique,
	// immutable afterwards.
	ID int64 `json:"id"`

	// Date is the calendar date of the dive in YYYY-MM-DD form.
	Date string `json:"date"`

	// Site is the dive site name. Never blank in the store: a blank site
	// is replaced with PlaceholderSite at save time.
	Site string `json:"site"`

	// Location is a free-text region/country.
	Location string `json:"location"`

	// DepthMeters is the maximum depth reached, in meters.
	DepthMeters float64 `json:"depthMeters"`

	// BottomTimeMin is the bottom time, in minutes.
	BottomTimeMin float64 `json:"bottomTimeMin"`

	// Gas is the breathing gas label: AIR or EANnn.
	Gas string `json:"gas"`

	// StartBar and EndBar are tank pressures in bar.
	StartBar float64 `json:"startBar"`
	EndBar   float64 `json:"endBar"`

	// CylinderLiters is the cylinder water volume in liters.
	CylinderLiters float64 `json:"cylinderLiters"`

	// SacLpm is the surface air consumption rate in liters/minute,
	// computed once at save time and never recomputed retroactively.
	SacLpm float64 `json:"sacLpm"`

	// Notes is free text, optional.
	Notes string `json:"notes"`

	// CreatedAt is the creation time in UTC, immutable.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation, UTC.
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiveInput is the normalized payload for creating a dive, produced by the
// validation layer. The store assigns ID, SAC and timestamps.
type DiveInput struct {
	Date           string
	Site           string
	Location       string
	DepthMeters    float64
	BottomTimeMin  float64
	Gas            string
	StartBar       float64
	EndBar         float64
	CylinderLiters float64
	Notes          string
}

// DiveUpdate is a partial patch: nil fields are left untouched. Changing
// pressures or depth does not recompute SacLpm.
type DiveUpdate struct {
	Date           *string
	Site           *string
	Location       *string
	DepthMeters    *float64
	BottomTimeMin  *float64
	Gas            *string
	StartBar       *float64
	EndBar         *float64
	CylinderLiters *float64
	Notes          *string
}

// Apply merges the non-nil fields of u into rec. Timestamps are the store's
// concern and are not touched here.
func (u DiveUpdate) Apply(rec *DiveRecord) {
	if u.Date != nil {
		rec.Date = *u.Date
	}
	if u.Site != nil {
		rec.Site = *u.Site
	}
	if u.Location != nil {
		rec.Location = *u.Location
	}
	if u.DepthMeters != nil {
		rec.DepthMeters = *u.DepthMeters
	}
	if u.BottomTimeMin != nil {
		rec.BottomTimeMin = *u.BottomTimeMin
	}
	if u.Gas != nil {
		rec.Gas = *u.Gas
	}
	if u.StartBar != nil {
		rec.StartBar = *u.StartBar
	}
	if u.EndBar != nil {
		rec.EndBar = *u.EndBar
	}
	if u.CylinderLiters != nil {
		rec.CylinderLiters = *u.CylinderLiters
	}
	if u.Notes != nil {
		rec.Notes = *u.Notes
	}
}

// ComputeSac returns the surface air consumption rate in liters/minute:
//
//	((startBar − endBar) × cylinderLiters) / bottomTimeMin / (depthMeters/10 + 1)
//
// rounded to two decimals. It returns 0 when endBar ≥ startBar, bottom time
// is not positive, or the cylinder size is not positive: a dive without a
// usable pressure delta is stored with a zero SAC, not rejected.
func ComputeSac(depthMeters, bottomTimeMin, startBar, endBar, cylinderLiters float64) float64 {
	if endBar >= startBar {
		return 0
	}
	if bottomTimeMin <= 0 || cylinderLiters <= 0 {
		return 0
	}
	sac := (startBar - endBar) * cylinderLiters / bottomTimeMin / (depthMeters/10 + 1)
	return math.Round(sac*100) / 100
}

// NormalizeGas canonicalizes a user-entered gas label. Blank means AIR;
// "air" and "ean32" are accepted case-insensitively; any EANnn with an O₂
// fraction in 22–99 passes through uppercased. Everything else returns
// ErrInvalidGas.
func NormalizeGas(s string) (string, error) {
	g := strings.ToUpper(strings.TrimSpace(s))
	if g == "" || g == GasAir {
		return GasAir, nil
	}
	if strings.HasPrefix(g, "EAN") && len(g) == 5 {
		o2, err := strconv.Atoi(g[3:])
		if err == nil && o2 >= 22 && o2 <= 99 {
			return g, nil
		}
	}
	return "", ErrInvalidGas
}
