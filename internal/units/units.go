// Package units renders stored metric measurements as display strings in the
// preferred unit system. Conversion factors and per-field precision are
// fixed; a zero or absent measurement renders as an em-dash placeholder
// rather than "0".
package units

import (
	"errors"
	"fmt"
)

// System is the persisted display preference.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

var ErrInvalidSystem = errors.New("units must be metric or imperial")

// ParseSystem validates a stored or user-entered preference. The empty
// string means the preference was never set and defaults to metric.
func ParseSystem(s string) (System, error) {
	switch System(s) {
	case "":
		return Metric, nil
	case Metric, Imperial:
		return System(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSystem, s)
}

// Fixed conversion factors from the stored metric base units.
const (
	feetPerMeter       = 3.28084
	psiPerBar          = 14.5038
	litersPerCubicFoot = 28.317
)

// Placeholder is rendered for zero/absent measurements.
const Placeholder = "—"

// Depth renders meters with 0 decimals: "18 m" or "59 ft".
func Depth(meters float64, sys System) string {
	if meters <= 0 {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// Pressure renders bar with 0 decimals: "200 bar" or "2901 psi".
func Pressure(bar float64, sys System) string {
	if bar <= 0 {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%.0f psi", bar*psiPerBar)
	}
	return fmt.Sprintf("%.0f bar", bar)
}

// Sac renders a surface air consumption rate: 1 decimal in metric L/min,
// 2 decimals in imperial ft³/min.
func Sac(lpm float64, sys System) string {
	if lpm <= 0 {
		return Placeholder
	}
	if sys == Imperial {
		return fmt.Sprintf("%.2f ft³/min", lpm/litersPerCubicFoot)
	}
	return fmt.Sprintf("%.1f L/min", lpm)
}

// BottomTime renders minutes, unit-system independent: "42 min".
func BottomTime(min float64) string {
	if min <= 0 {
		return Placeholder
	}
	return fmt.Sprintf("%.0f min", min)
}
