package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/units"
)

func newUnitsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Choose between metric and imperial display",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the current unit system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().UnitsGet(cmd.Context())
		},
	}

	set := &cobra.Command{
		Use:   "set <metric|imperial>",
		Short: "Set the unit system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().UnitsSet(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}

// UnitsGet prints the persisted display preference. Stored measurements stay
// metric either way; only rendering changes.
func (a *App) UnitsGet(ctx context.Context) error {
	sys, err := a.settings.Units(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Units: %s\n", sys)
	return nil
}

// UnitsSet validates and persists the display preference.
func (a *App) UnitsSet(ctx context.Context, raw string) error {
	sys, err := units.ParseSystem(raw)
	if err != nil {
		return err
	}
	if err := a.settings.SetUnits(ctx, sys); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Units set to %s.\n", okMark("✓"), sys)
	return nil
}
