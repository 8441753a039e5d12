// Package export renders the read-only log snapshot into portable formats.
//
// Two forms are supported: indented JSON (the full snapshot, the same shape
// the cloud sync uploads) and CSV (one row per dive, fixed header, metric
// base units). Both read only the snapshot handed in and never touch the
// store, so an export can run concurrently with anything else.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/decolog/decolog/internal/client/services"
)

// WriteJSON renders the snapshot as indented JSON, trailing newline included.
func WriteJSON(w io.Writer, snap *services.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	return nil
}

// csvHeader is the fixed CSV column set. Renaming a column is a breaking
// change for downstream spreadsheets, so append-only.
var csvHeader = []string{
	"id", "date", "site", "location",
	"depth_m", "bottom_time_min", "gas",
	"start_bar", "end_bar", "cylinder_l", "sac_lpm",
	"notes",
}

// WriteCSV renders one row per dive in snapshot order (newest first).
// Values stay in the metric base units they are stored in.
func WriteCSV(w io.Writer, snap *services.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for _, d := range snap.Dives {
		row := []string{
			strconv.FormatInt(d.ID, 10),
			d.Date,
			d.Site,
			d.Location,
			formatNumber(d.DepthMeters),
			formatNumber(d.BottomTimeMin),
			d.Gas,
			formatNumber(d.StartBar),
			formatNumber(d.EndBar),
			formatNumber(d.CylinderLiters),
			formatNumber(d.SacLpm),
			d.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing dive %d: %w", d.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing csv: %w", err)
	}
	return nil
}

// formatNumber renders a measurement without a fixed decimal count, so whole
// numbers stay whole (42, not 42.0) and fractions keep their precision.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
