package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/buildinfo"
	"github.com/decolog/decolog/internal/client/config"
)

// newAppFn is a test seam for NewApp.
var newAppFn = NewApp

// NewRootCmd builds the decolog command tree. The App is created lazily in
// the persistent pre-run, after cobra has parsed the global flags, and closed
// again once the subcommand returns.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		dbPath    string
		serverURL string
		timeout   time.Duration
		a         *App
	)

	root := &cobra.Command{
		Use:   "decolog",
		Short: "DecoLog keeps your dive log on your device",
		Long: `DecoLog is an offline-first dive log: dives, SAC rates, certification
details and trip statistics live in a local database and every command works
without a connection. The license service is only contacted for tier
upgrades and cloud backup.`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// commands that never touch the log should not create the
			// database as a side effect
			switch cmd.Name() {
			case "help", "version", "__complete":
				return nil
			}

			cfg := config.LoadConfig(cfgFile)
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if serverURL != "" {
				cfg.ServerBaseURL = serverURL
			}
			if timeout > 0 {
				cfg.HTTPTimeout = timeout
			}

			var err error
			a, err = newAppFn(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("error starting decolog: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				_ = a.Close()
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a JSON config file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the local dive log database")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "base URL of the license service")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "license service request timeout")

	app := func() *App { return a }
	root.AddCommand(
		newDiveCmd(app),
		newProfileCmd(app),
		newStatsCmd(app),
		newUnitsCmd(app),
		newLicenseCmd(app),
		newSyncCmd(app),
		newExportCmd(app),
		newSupportCmd(app),
		newSeedCmd(app),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on error. Ctrl-C cancels
// the command context so in-flight network calls stop cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failText("Error:"), err)
		os.Exit(1)
	}
}
