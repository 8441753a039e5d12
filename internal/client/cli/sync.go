package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/shared"
)

func newSyncCmd(app func() *App) *cobra.Command {
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Back the log up to the cloud",
	}

	now := &cobra.Command{
		Use:   "now",
		Short: "Run a sync immediately",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SyncNow(cmd.Context())
		},
	}

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Turn cloud sync on (cloud tier only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SyncEnable(cmd.Context())
		},
	}

	disable := &cobra.Command{
		Use:   "disable",
		Short: "Turn cloud sync off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SyncDisable(cmd.Context())
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the sync state and last outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SyncStatus(cmd.Context())
		},
	}

	sync.AddCommand(now, enable, disable, status)
	return sync
}

// SyncNow runs one manual sync round trip.
func (a *App) SyncNow(ctx context.Context) error {
	fmt.Fprintln(a.out, "Syncing...")
	cfg, err := a.sync.ManualSync(ctx)
	switch {
	case errors.Is(err, shared.ErrSyncDisabled):
		return errors.New("cloud sync is disabled; run 'decolog sync enable' first")
	case errors.Is(err, shared.ErrSyncInFlight):
		return errors.New("a sync is already running")
	case err != nil:
		return err
	}

	when := "now"
	if cfg.LastSyncAt != nil {
		when = cfg.LastSyncAt.Format("15:04:05")
	}
	fmt.Fprintf(a.out, "%s Synced at %s.\n", okMark("✓"), when)
	return nil
}

// SyncEnable turns cloud sync on; only the cloud tier may.
func (a *App) SyncEnable(ctx context.Context) error {
	if err := a.sync.Enable(ctx); err != nil {
		if errors.Is(err, shared.ErrInvalidMode) {
			st, stateErr := a.license.State(ctx)
			if stateErr != nil {
				return err
			}
			return fmt.Errorf("cloud sync needs the cloud tier and this device is on %s; see 'decolog license upgrade --tier cloud'", st.Mode)
		}
		return err
	}
	fmt.Fprintf(a.out, "%s Cloud sync enabled. Run 'decolog sync now' to push a snapshot.\n", okMark("✓"))
	return nil
}

// SyncDisable turns cloud sync off. The local log is untouched.
func (a *App) SyncDisable(ctx context.Context) error {
	if err := a.sync.Disable(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cloud sync disabled.\n")
	return nil
}

// SyncStatus shows whether sync is on and how the last run went.
func (a *App) SyncStatus(ctx context.Context) error {
	cfg, err := a.sync.Config(ctx)
	if err != nil {
		return err
	}

	enabled := "disabled"
	if cfg.CloudSyncEnabled {
		enabled = "enabled"
	}
	printKV(a.out, "Cloud sync", enabled)
	if cfg.LastSyncAt == nil {
		printKV(a.out, "Last sync", "never")
	} else {
		printKV(a.out, "Last sync", fmt.Sprintf("%s (%s)", cfg.LastSyncAt.Format("2006-01-02 15:04:05"), cfg.LastSyncStatus))
	}
	return nil
}
