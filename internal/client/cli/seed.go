package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add two example dives to an empty log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Seed(cmd.Context())
		},
	}
}

// Seed fills an empty log with the two example dives. A log that already has
// records is left alone.
func (a *App) Seed(ctx context.Context) error {
	seeded, err := a.dives.SeedIfEmpty(ctx)
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(a.out, "Your log already has dives; nothing was added.")
		return nil
	}
	fmt.Fprintf(a.out, "%s Added 2 example dives. Browse them with 'decolog dive list'.\n", okMark("✓"))
	return nil
}
