package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSupportCmd(app func() *App) *cobra.Command {
	var (
		subject    string
		message    string
		deviceInfo bool
	)
	cmd := &cobra.Command{
		Use:   "support",
		Short: "File a support message",
		Long: `File a support message. It is stored locally with the log; pass
--device-info=false to leave out the platform and app version.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SupportSend(cmd.Context(), subject, message, deviceInfo)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "one-line summary")
	cmd.Flags().StringVarP(&message, "message", "m", "", "the message body")
	cmd.Flags().BoolVar(&deviceInfo, "device-info", true, "attach platform and app version")

	list := &cobra.Command{
		Use:   "list",
		Short: "List filed support messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().SupportList(cmd.Context())
		},
	}
	cmd.AddCommand(list)
	return cmd
}

// SupportSend stores a support message, prompting for missing parts on a
// terminal.
func (a *App) SupportSend(ctx context.Context, subject, message string, includeDeviceInfo bool) error {
	var err error
	if subject == "" && isTerminal() {
		subject, err = GetSimpleText(a.reader, "Subject", a.out)
		if err != nil {
			return err
		}
	}
	if message == "" && isTerminal() {
		message, err = GetMultiline(a.reader, "Describe the problem:", a.out)
		if err != nil {
			return err
		}
	}
	if subject == "" || message == "" {
		return errors.New("a subject and a message are required")
	}

	msg, err := a.support.Save(ctx, subject, message, includeDeviceInfo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Support message #%d saved.\n", okMark("✓"), msg.ID)
	return nil
}

// SupportList shows the filed messages, oldest first.
func (a *App) SupportList(ctx context.Context) error {
	msgs, err := a.support.List(ctx)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No support messages filed.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "#%d  %s  %s\n", m.ID, m.CreatedAt.Format("2006-01-02"), m.Subject)
	}
	return nil
}
