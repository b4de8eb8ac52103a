package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmewes/pymeta/pkg/export"
)

// newExportCmd creates the export command, which emits the validated record
// as JSON for downstream tooling.
func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [dir|pyproject.toml]",
		Short: "Export the validated metadata record as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := loadProject(ctx, argOrEmpty(args))
			if err != nil {
				reportFailure(err)
				return fmt.Errorf("validation failed")
			}

			if output == "" {
				return export.WriteJSON(p.Meta, os.Stdout)
			}
			if err := export.ExportJSON(p.Meta, output); err != nil {
				return err
			}
			printSuccess("Exported %s", p.Meta.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
