// Package stats computes aggregate statistics over the dive record set.
// Pure input→output: callers pass the full list, nothing is cached.
package stats

import "github.com/decolog/decolog/internal/client/models"

// Summary holds the aggregates displayed on the stats screen, in metric base
// units.
type Summary struct {
	Count              int
	TotalBottomTimeMin float64
	MaxDepthMeters     float64
	// AvgSacLpm is the mean of the nonzero SAC values only. Records saved
	// without a usable pressure delta carry SAC 0 and are excluded from
	// the average rather than dragging it down.
	AvgSacLpm float64
	// GasCounts tallies records per gas label (AIR, EAN32, ...).
	GasCounts map[string]int
}

// Compute aggregates records into a Summary. An empty record set yields the
// zero Summary with an initialized, empty GasCounts map.
func Compute(records []models.DiveRecord) Summary {
	s := Summary{GasCounts: make(map[string]int)}

	var sacSum float64
	var sacN int

	for _, rec := range records {
		s.Count++
		s.TotalBottomTimeMin += rec.BottomTimeMin
		if rec.DepthMeters > s.MaxDepthMeters {
			s.MaxDepthMeters = rec.DepthMeters
		}
		if rec.SacLpm > 0 {
			sacSum += rec.SacLpm
			sacN++
		}
		s.GasCounts[rec.Gas]++
	}

	if sacN > 0 {
		s.AvgSacLpm = sacSum / float64(sacN)
	}
	return s
}
