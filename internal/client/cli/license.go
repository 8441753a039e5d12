package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/client/client"
	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/client/services"
	"github.com/decolog/decolog/internal/shared"
)

func newLicenseCmd(app func() *App) *cobra.Command {
	license := &cobra.Command{
		Use:   "license",
		Short: "Show and change the license tier",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the current tier and free-limit usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().LicenseStatus(cmd.Context())
		},
	}

	var tier string
	upgrade := &cobra.Command{
		Use:   "upgrade",
		Short: "Start a checkout for a paid tier",
		Long: `Start a hosted checkout for the pro or cloud tier. The command prints a
link; after paying in the browser, run 'decolog license refresh' to pick up
the new tier.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().LicenseUpgrade(cmd.Context(), tier)
		},
	}
	upgrade.Flags().StringVar(&tier, "tier", string(models.LicenseModePro), "tier to buy (pro or cloud)")

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the current entitlement from the license service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().LicenseRefresh(cmd.Context())
		},
	}

	license.AddCommand(status, upgrade, refresh)
	return license
}

// LicenseStatus renders the tier, the free-limit usage while training, and
// the stored device token when one exists.
func (a *App) LicenseStatus(ctx context.Context) error {
	st, err := a.license.State(ctx)
	if err != nil {
		return err
	}
	deviceID, err := a.license.DeviceID(ctx)
	if err != nil {
		return err
	}

	printKV(a.out, "Tier", string(st.Mode))
	if st.ActivatedAt != nil {
		printKV(a.out, "Active since", st.ActivatedAt.Format("2006-01-02"))
	}
	printKV(a.out, "Device ID", deviceID)

	if st.Mode == models.LicenseModeTraining {
		n, err := a.dives.Count(ctx)
		if err != nil {
			return err
		}
		printKV(a.out, "Free tier", fmt.Sprintf("%d of %d dives used", n, services.FreeTierDiveLimit))
		if n >= services.FreeTierDiveLimit {
			fmt.Fprintln(a.out, warnText("The free limit is reached; new dives are blocked."))
			fmt.Fprintln(a.out, "Upgrade with 'decolog license upgrade --tier pro'.")
		}
	}

	token, err := a.license.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		printKV(a.out, "Device token", tokenSummary(token))
	}
	return nil
}

// LicenseUpgrade asks the license service for a hosted-checkout link.
func (a *App) LicenseUpgrade(ctx context.Context, tier string) error {
	mode, err := models.ParseLicenseMode(tier)
	if err != nil {
		return err
	}
	if mode == models.LicenseModeTraining {
		return fmt.Errorf("%w: training is the starting tier, pick pro or cloud", shared.ErrInvalidMode)
	}

	deviceID, err := a.license.DeviceID(ctx)
	if err != nil {
		return err
	}
	url, err := a.api.CreateCheckoutSession(ctx, deviceID, mode)
	if err != nil {
		return fmt.Errorf("checkout error: %w", err)
	}

	fmt.Fprintln(a.out, "Open this link to complete the purchase:")
	fmt.Fprintf(a.out, "  %s\n", url)
	fmt.Fprintln(a.out, "When you are done, run 'decolog license refresh'.")
	return nil
}

// LicenseRefresh polls the license service and applies whatever entitlement
// it reports. Applying is idempotent, so refreshing twice is harmless.
func (a *App) LicenseRefresh(ctx context.Context) error {
	deviceID, err := a.license.DeviceID(ctx)
	if err != nil {
		return err
	}

	lic, err := a.api.GetLicense(ctx, deviceID)
	if errors.Is(err, shared.ErrNotFound) {
		fmt.Fprintln(a.out, "No purchase on record for this device yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("license refresh error: %w", err)
	}

	st, err := a.license.ApplyEntitlement(ctx, lic)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s License refreshed: %s tier\n", okMark("✓"), st.Mode)
	if lic.Status == client.StatusCanceled {
		fmt.Fprintln(a.out, warnText("The subscription is canceled; the device runs in the training tier."))
	}
	if st.Mode == models.LicenseModeCloud {
		fmt.Fprintln(a.out, "Cloud backup is available. Turn it on with 'decolog sync enable'.")
	}
	return nil
}

// tokenSummary renders the stored device token's expiry without verifying
// the signature; verification is the server's job on upload.
func tokenSummary(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "present (unreadable)"
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "present"
	}
	return "valid until " + exp.Format("2006-01-02 15:04")
}
