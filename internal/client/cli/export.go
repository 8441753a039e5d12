package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/decolog/decolog/internal/export"
)

func newExportCmd(app func() *App) *cobra.Command {
	var (
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the log as JSON or CSV",
		Long: `Export a snapshot of the log: the dives newest first, plus the diver
profile in the JSON form. Values are metric base units regardless of the
display preference. Without --out the data goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app().Export(cmd.Context(), format, outPath)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format (json or csv)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

// Export writes a snapshot of the log in the requested format.
func (a *App) Export(ctx context.Context, format, outPath string) error {
	snap, err := a.dives.Snapshot(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		err = export.WriteJSON(&buf, snap)
	case "csv":
		err = export.WriteCSV(&buf, snap)
	default:
		return fmt.Errorf("unsupported format %q (json or csv)", format)
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = a.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", outPath, err)
	}
	fmt.Fprintf(a.out, "%s Exported %d dive(s) to %s\n", okMark("✓"), len(snap.Dives), outPath)
	return nil
}
