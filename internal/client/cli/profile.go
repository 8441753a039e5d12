package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/client/models"
	"github.com/decolog/decolog/internal/units"
)

type profileFlags struct {
	name           string
	email          string
	agency         string
	level          string
	certNumber     string
	emergencyName  string
	emergencyPhone string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "diver name")
	cmd.Flags().StringVar(&f.email, "email", "", "contact email")
	cmd.Flags().StringVar(&f.agency, "agency", "", "certification agency (PADI, SSI, ...)")
	cmd.Flags().StringVar(&f.level, "level", "", "certification level")
	cmd.Flags().StringVar(&f.certNumber, "cert-number", "", "certification number")
	cmd.Flags().StringVar(&f.emergencyName, "emergency-name", "", "emergency contact name")
	cmd.Flags().StringVar(&f.emergencyPhone, "emergency-phone", "", "emergency contact phone")
}

func newProfileCmd(app func() *App) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage the diver profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the diver profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().ProfileShow(cmd.Context())
		},
	}

	var editFlags profileFlags
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Edit the diver profile",
		Long: `Edit the diver profile. Only the fields given as flags change; on a
terminal with no flags every field is prompted with its current value as the
default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().ProfileEdit(cmd.Context(), &editFlags, cmd.Flags().Changed, cmd.Flags().NFlag() == 0 && isTerminal())
		},
	}
	editFlags.register(edit)

	profile.AddCommand(show, edit)
	return profile
}

// ProfileShow renders the stored profile.
func (a *App) ProfileShow(ctx context.Context) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintln(a.out, "No profile yet. Create one with 'decolog profile edit'.")
		return nil
	}

	printKV(a.out, "Name", orDash(p.Name))
	printKV(a.out, "Email", orDash(p.Email))
	cert := strings.TrimSpace(strings.Join([]string{p.CertAgency, p.CertLevel}, " "))
	if p.CertNumber != "" {
		cert = strings.TrimSpace(cert + " #" + p.CertNumber)
	}
	printKV(a.out, "Certification", orDash(cert))
	emergency := strings.TrimSpace(strings.Join([]string{p.EmergencyName, p.EmergencyPhone}, " "))
	printKV(a.out, "Emergency contact", orDash(emergency))
	return nil
}

// ProfileEdit merges flag (or prompted) values over the stored profile and
// saves the result.
func (a *App) ProfileEdit(ctx context.Context, flags *profileFlags, changed func(string) bool, interactive bool) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		p = &models.DiverProfile{}
	}

	if interactive {
		if err := a.promptProfileForm(p); err != nil {
			return err
		}
	} else {
		if changed("name") {
			p.Name = flags.name
		}
		if changed("email") {
			p.Email = flags.email
		}
		if changed("agency") {
			p.CertAgency = flags.agency
		}
		if changed("level") {
			p.CertLevel = flags.level
		}
		if changed("cert-number") {
			p.CertNumber = flags.certNumber
		}
		if changed("emergency-name") {
			p.EmergencyName = flags.emergencyName
		}
		if changed("emergency-phone") {
			p.EmergencyPhone = flags.emergencyPhone
		}
	}

	if err := a.profile.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Profile saved.\n", okMark("✓"))
	return nil
}

func (a *App) promptProfileForm(p *models.DiverProfile) error {
	prompts := []struct {
		label string
		field *string
	}{
		{"Name", &p.Name},
		{"Email", &p.Email},
		{"Certification agency", &p.CertAgency},
		{"Certification level", &p.CertLevel},
		{"Certification number", &p.CertNumber},
		{"Emergency contact name", &p.EmergencyName},
		{"Emergency contact phone", &p.EmergencyPhone},
	}
	for _, pr := range prompts {
		text, err := GetTextWithDefault(a.reader, pr.label, *pr.field, a.out)
		if err != nil {
			return err
		}
		*pr.field = text
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return units.Placeholder
	}
	return s
}
