package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/validation"
	"github.com/decolog/decolog/internal/units"
)

// Color helpers shared by the command output. fatih/color turns itself off
// when stdout is not a terminal, so piped output stays plain.
var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
	failText = color.New(color.FgRed).SprintFunc()
)

// fieldOrder fixes the order validation failures are listed in, matching the
// order the form asks for them.
var fieldOrder = []string{
	validation.FieldDate,
	validation.FieldSite,
	validation.FieldDepth,
	validation.FieldBottomTime,
	validation.FieldGas,
	validation.FieldStartBar,
	validation.FieldEndBar,
	validation.FieldCylinder,
}

func printFieldErrors(w io.Writer, fe validation.FieldErrors) {
	for _, f := range fieldOrder {
		if msg, ok := fe[f]; ok {
			fmt.Fprintf(w, "  %s: %s\n", f, failText(msg))
		}
	}
}

func printKV(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-19s %s\n", label+":", value)
}

// printDiveTable renders the dive list, newest first, as an aligned table.
func printDiveTable(w io.Writer, records []models.DiveRecord, sys units.System) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSITE\tDEPTH\tTIME\tGAS\tSAC")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			rec.Date,
			rec.Site,
			units.Depth(rec.DepthMeters, sys),
			units.BottomTime(rec.BottomTimeMin),
			rec.Gas,
			units.Sac(rec.SacLpm, sys),
		)
	}
	tw.Flush()
}

// printDive renders the full detail view of one record.
func printDive(w io.Writer, rec *models.DiveRecord, sys units.System) {
	fmt.Fprintf(w, "Dive #%d\n", rec.ID)
	printKV(w, "Date", rec.Date)
	printKV(w, "Site", rec.Site)
	if rec.Location != "" {
		printKV(w, "Location", rec.Location)
	}
	printKV(w, "Max depth", units.Depth(rec.DepthMeters, sys))
	printKV(w, "Bottom time", units.BottomTime(rec.BottomTimeMin))
	printKV(w, "Gas", rec.Gas)
	printKV(w, "Pressure", fmt.Sprintf("%s -> %s",
		units.Pressure(rec.StartBar, sys), units.Pressure(rec.EndBar, sys)))
	printKV(w, "Cylinder", formatLiters(rec.CylinderLiters))
	printKV(w, "SAC", units.Sac(rec.SacLpm, sys))
	if rec.Notes != "" {
		printKV(w, "Notes", rec.Notes)
	}
	printKV(w, "Logged", rec.CreatedAt.Format("2006-01-02 15:04"))
}

// formatLiters renders a cylinder volume; sizes are quoted in liters in both
// unit systems.
func formatLiters(l float64) string {
	if l <= 0 {
		return units.Placeholder
	}
	return strconv.FormatFloat(l, 'f', -1, 64) + " L"
}

// sortedGases returns the gas labels of a tally in a stable order.
func sortedGases(counts map[string]int) []string {
	gases := make([]string, 0, len(counts))
	for g := range counts {
		gases = append(gases, g)
	}
	sort.Strings(gases)
	return gases
}
