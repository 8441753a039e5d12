// Package validation checks a raw dive form before it reaches the store.
// Each offending field gets exactly one message (the first violation), so
// the caller can highlight every invalid input independently.
package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/decolog/decolog/internal/client/models"
)

// Form is the raw user input, all strings, exactly as collected.
type Form struct {
	Date           string
	Site           string
	Location       string
	DepthMeters    string
	BottomTimeMin  string
	Gas            string
	StartBar       string
	EndBar         string
	CylinderLiters string
	Notes          string
}

// FieldErrors maps a field name to its first violation message.
type FieldErrors map[string]string

// Fields used as FieldErrors keys.
const (
	FieldDate       = "date"
	FieldSite       = "site"
	FieldDepth      = "depth"
	FieldBottomTime = "bottomTime"
	FieldGas        = "gas"
	FieldStartBar   = "startBar"
	FieldEndBar     = "endBar"
	FieldCylinder   = "cylinder"
)

func (fe FieldErrors) set(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// parseNumber reports the raw string as a float plus ok. Blank and garbage
// are distinguished by the caller's messages.
func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return v, err == nil
}

// ParseDiveForm validates and normalizes a dive form. On success the
// returned FieldErrors is empty and the DiveInput carries parsed numbers,
// trimmed strings, a canonical gas label and the cylinder default applied.
func ParseDiveForm(f Form) (models.DiveInput, FieldErrors) {
	fe := make(FieldErrors)
	var in models.DiveInput

	in.Date = strings.TrimSpace(f.Date)
	if in.Date == "" {
		fe.set(FieldDate, "date is required")
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		fe.set(FieldDate, "date must be YYYY-MM-DD")
	}

	in.Site = strings.TrimSpace(f.Site)
	if in.Site == "" {
		fe.set(FieldSite, "site is required")
	}

	in.Location = strings.TrimSpace(f.Location)
	in.Notes = strings.TrimSpace(f.Notes)

	if strings.TrimSpace(f.DepthMeters) == "" {
		fe.set(FieldDepth, "depth is required")
	} else if v, ok := parseNumber(f.DepthMeters); !ok {
		fe.set(FieldDepth, "depth must be a number")
	} else if v <= 0 {
		fe.set(FieldDepth, "depth must be greater than 0")
	} else if v > 100 {
		fe.set(FieldDepth, "depth must be at most 100 m")
	} else {
		in.DepthMeters = v
	}

	if strings.TrimSpace(f.BottomTimeMin) == "" {
		fe.set(FieldBottomTime, "bottom time is required")
	} else if v, ok := parseNumber(f.BottomTimeMin); !ok {
		fe.set(FieldBottomTime, "bottom time must be a number")
	} else if v <= 0 {
		fe.set(FieldBottomTime, "bottom time must be greater than 0")
	} else if v > 600 {
		fe.set(FieldBottomTime, "bottom time must be at most 600 min")
	} else {
		in.BottomTimeMin = v
	}

	gas, err := models.NormalizeGas(f.Gas)
	if err != nil {
		fe.set(FieldGas, "gas must be AIR or EANnn")
	} else {
		in.Gas = gas
	}

	startOK := false
	if strings.TrimSpace(f.StartBar) == "" {
		fe.set(FieldStartBar, "start pressure is required")
	} else if v, ok := parseNumber(f.StartBar); !ok {
		fe.set(FieldStartBar, "start pressure must be a number")
	} else if v <= 0 {
		fe.set(FieldStartBar, "start pressure must be greater than 0")
	} else {
		in.StartBar = v
		startOK = true
	}

	if strings.TrimSpace(f.EndBar) == "" {
		fe.set(FieldEndBar, "end pressure is required")
	} else if v, ok := parseNumber(f.EndBar); !ok {
		fe.set(FieldEndBar, "end pressure must be a number")
	} else if v < 0 {
		fe.set(FieldEndBar, "end pressure must be at least 0")
	} else if startOK && v >= in.StartBar {
		fe.set(FieldEndBar, "end pressure must be less than start pressure")
	} else {
		in.EndBar = v
	}

	if strings.TrimSpace(f.CylinderLiters) == "" {
		in.CylinderLiters = models.DefaultCylinderLiters
	} else if v, ok := parseNumber(f.CylinderLiters); !ok {
		fe.set(FieldCylinder, "cylinder size must be a number")
	} else if v <= 0 {
		fe.set(FieldCylinder, "cylinder size must be greater than 0")
	} else if v > 200 {
		fe.set(FieldCylinder, "cylinder size must be at most 200 L")
	} else {
		in.CylinderLiters = v
	}

	return in, fe
}
