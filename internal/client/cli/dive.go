package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/services"
	"github.com/decolog/decolog/internal/client/validation"
	"github.com/decolog/decolog/internal/shared"
	"github.com/decolog/decolog/internal/units"
)

// diveFlags collects the raw string flags shared by 'dive add' and
// 'dive edit'. The values are parsed by the validation package, not by
// cobra, so error messages stay identical between flag and interactive
// input.
type diveFlags struct {
	date       string
	site       string
	location   string
	depth      string
	bottomTime string
	gas        string
	start      string
	end        string
	cylinder   string
	notes      string
}

func (f *diveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "dive date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.site, "site", "s", "", "dive site name")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "region or country")
	cmd.Flags().StringVar(&f.depth, "depth", "", "max depth in meters")
	cmd.Flags().StringVar(&f.bottomTime, "time", "", "bottom time in minutes")
	cmd.Flags().StringVarP(&f.gas, "gas", "g", "", "breathing gas (AIR or EANxx)")
	cmd.Flags().StringVar(&f.start, "start", "", "start pressure in bar")
	cmd.Flags().StringVar(&f.end, "end", "", "end pressure in bar")
	cmd.Flags().StringVar(&f.cylinder, "cylinder", "", "cylinder size in liters")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "free-form notes")
}

// overlay copies the changed flags onto a base form.
func (f *diveFlags) overlay(base validation.Form, changed func(string) bool) validation.Form {
	if changed("date") {
		base.Date = f.date
	}
	if changed("site") {
		base.Site = f.site
	}
	if changed("location") {
		base.Location = f.location
	}
	if changed("depth") {
		base.DepthMeters = f.depth
	}
	if changed("time") {
		base.BottomTimeMin = f.bottomTime
	}
	if changed("gas") {
		base.Gas = f.gas
	}
	if changed("start") {
		base.StartBar = f.start
	}
	if changed("end") {
		base.EndBar = f.end
	}
	if changed("cylinder") {
		base.CylinderLiters = f.cylinder
	}
	if changed("notes") {
		base.Notes = f.notes
	}
	return base
}

func newDiveCmd(app func() *App) *cobra.Command {
	dive := &cobra.Command{
		Use:   "dive",
		Short: "Manage the dive log",
	}

	var addFlags diveFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a dive",
		Long: `Log a dive. With no flags on a terminal the fields are prompted one by
one; otherwise the flags are the only input. Depth, times and pressures are
entered in metric units regardless of the display preference.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			form := addFlags.overlay(validation.Form{}, cmd.Flags().Changed)
			if cmd.Flags().NFlag() == 0 && isTerminal() {
				var err error
				form, err = a.promptDiveForm(defaultDiveForm())
				if err != nil {
					return err
				}
			}
			return a.DiveAdd(cmd.Context(), form)
		},
	}
	addFlags.register(add)

	list := &cobra.Command{
		Use:   "list",
		Short: "List dives, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().DiveList(cmd.Context())
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one dive in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app().DiveShow(cmd.Context(), id)
		},
	}

	var editFlags diveFlags
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of a dive",
		Long: `Edit a dive. Only the fields given as flags change; on a terminal with
no flags every field is prompted with its current value as the default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app().DiveEdit(cmd.Context(), id, &editFlags, cmd.Flags().Changed, cmd.Flags().NFlag() == 0 && isTerminal())
		},
	}
	editFlags.register(edit)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a dive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app().DiveDelete(cmd.Context(), id)
		},
	}

	dive.AddCommand(add, list, show, edit, rm)
	return dive
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid dive id %q", arg)
	}
	return id, nil
}

// defaultDiveForm pre-fills the interactive add form.
func defaultDiveForm() validation.Form {
	return validation.Form{
		Date: time.Now().Format("2006-01-02"),
		Gas:  models.GasAir,
	}
}

// promptDiveForm walks the dive form field by field. Prompting happens in
// the same order the validation messages list the fields.
func (a *App) promptDiveForm(defaults validation.Form) (validation.Form, error) {
	form := defaults

	prompts := []struct {
		label string
		field *string
	}{
		{"Dive date (YYYY-MM-DD)", &form.Date},
		{"Site", &form.Site},
		{"Location", &form.Location},
		{"Max depth (m)", &form.DepthMeters},
		{"Bottom time (min)", &form.BottomTimeMin},
		{"Gas (AIR or EANxx)", &form.Gas},
		{"Start pressure (bar)", &form.StartBar},
		{"End pressure (bar)", &form.EndBar},
		{"Cylinder size (L, Enter for 11.1)", &form.CylinderLiters},
	}
	for _, p := range prompts {
		text, err := GetTextWithDefault(a.reader, p.label, *p.field, a.out)
		if err != nil {
			return validation.Form{}, err
		}
		*p.field = text
	}

	notes, err := GetMultiline(a.reader, "Notes:", a.out)
	if err != nil {
		return validation.Form{}, err
	}
	// an empty body keeps whatever was there; clearing notes is an
	// explicit edit via --notes ""
	if notes == "" {
		notes = defaults.Notes
	}
	form.Notes = notes
	return form, nil
}

// DiveAdd validates the form and stores the dive.
func (a *App) DiveAdd(ctx context.Context, form validation.Form) error {
	in, fieldErrs := validation.ParseDiveForm(form)
	if len(fieldErrs) > 0 {
		printFieldErrors(a.out, fieldErrs)
		return fmt.Errorf("dive not saved: %d field(s) need fixing", len(fieldErrs))
	}

	rec, err := a.dives.Add(ctx, in)
	if err != nil {
		if errors.Is(err, shared.ErrDiveLimitReached) {
			fmt.Fprintln(a.out, warnText(fmt.Sprintf("The free tier stops at %d dives.", services.FreeTierDiveLimit)))
			fmt.Fprintln(a.out, "Upgrade to keep logging: decolog license upgrade --tier pro")
		}
		return err
	}

	sys, err := a.settings.Units(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Dive #%d saved: %s, %s\n", okMark("✓"), rec.ID, rec.Site, rec.Date)
	if rec.SacLpm > 0 {
		fmt.Fprintf(a.out, "  SAC %s\n", units.Sac(rec.SacLpm, sys))
	}
	return nil
}

// DiveList renders the log as a table.
func (a *App) DiveList(ctx context.Context) error {
	records, err := a.dives.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No dives yet. Log one with 'decolog dive add', or try 'decolog seed'.")
		return nil
	}

	sys, err := a.settings.Units(ctx)
	if err != nil {
		return err
	}
	printDiveTable(a.out, records, sys)
	fmt.Fprintf(a.out, "\n%d dive(s)\n", len(records))
	return nil
}

// DiveShow renders one record in full.
func (a *App) DiveShow(ctx context.Context, id int64) error {
	rec, err := a.dives.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("dive %d not found", id)
		}
		return err
	}

	sys, err := a.settings.Units(ctx)
	if err != nil {
		return err
	}
	printDive(a.out, rec, sys)
	return nil
}

// DiveEdit merges flag (or prompted) values over the stored record,
// re-validates the merged result and stores the patch.
func (a *App) DiveEdit(ctx context.Context, id int64, flags *diveFlags, changed func(string) bool, interactive bool) error {
	rec, err := a.dives.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("dive %d not found", id)
		}
		return err
	}

	base := formFromRecord(rec)
	var form validation.Form
	if interactive {
		form, err = a.promptDiveForm(base)
		if err != nil {
			return err
		}
		changed = func(string) bool { return true }
	} else {
		form = flags.overlay(base, changed)
	}

	in, fieldErrs := validation.ParseDiveForm(form)
	if len(fieldErrs) > 0 {
		printFieldErrors(a.out, fieldErrs)
		return fmt.Errorf("dive not updated: %d field(s) need fixing", len(fieldErrs))
	}

	patch := buildDiveUpdate(in, changed)
	updated, err := a.dives.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Dive #%d updated.\n", okMark("✓"), updated.ID)
	return nil
}

// DiveDelete removes a record. Deleting an id that is already gone is fine.
func (a *App) DiveDelete(ctx context.Context, id int64) error {
	if err := a.dives.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Dive #%d deleted.\n", id)
	return nil
}

// formFromRecord converts a stored record back into the raw form shape so
// edits can be re-validated as a whole (e.g. a new end pressure is checked
// against the existing start pressure).
func formFromRecord(rec *models.DiveRecord) validation.Form {
	return validation.Form{
		Date:           rec.Date,
		Site:           rec.Site,
		Location:       rec.Location,
		DepthMeters:    formatFloat(rec.DepthMeters),
		BottomTimeMin:  formatFloat(rec.BottomTimeMin),
		Gas:            rec.Gas,
		StartBar:       formatFloat(rec.StartBar),
		EndBar:         formatFloat(rec.EndBar),
		CylinderLiters: formatFloat(rec.CylinderLiters),
		Notes:          rec.Notes,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// buildDiveUpdate keeps only the changed fields in the patch, taking the
// parsed values so the store receives normalized data.
func buildDiveUpdate(in models.DiveInput, changed func(string) bool) models.DiveUpdate {
	var patch models.DiveUpdate
	if changed("date") {
		patch.Date = &in.Date
	}
	if changed("site") {
		patch.Site = &in.Site
	}
	if changed("location") {
		patch.Location = &in.Location
	}
	if changed("depth") {
		patch.DepthMeters = &in.DepthMeters
	}
	if changed("time") {
		patch.BottomTimeMin = &in.BottomTimeMin
	}
	if changed("gas") {
		patch.Gas = &in.Gas
	}
	if changed("start") {
		patch.StartBar = &in.StartBar
	}
	if changed("end") {
		patch.EndBar = &in.EndBar
	}
	if changed("cylinder") {
		patch.CylinderLiters = &in.CylinderLiters
	}
	if changed("notes") {
		patch.Notes = &in.Notes
	}
	return patch
}
