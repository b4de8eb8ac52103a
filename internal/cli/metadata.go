package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmewes/pymeta/pkg/coremeta"
)

// metadataOpts holds the command-line flags for the metadata command.
type metadataOpts struct {
	output  string // output file path (stdout if empty)
	version string // Metadata-Version override (auto if empty)
}

// newMetadataCmd creates the metadata command, which emits the validated
// record as a core-metadata (RFC 822) message, the format of METADATA and
// PKG-INFO files.
func newMetadataCmd() *cobra.Command {
	var opts metadataOpts

	cmd := &cobra.Command{
		Use:   "metadata [dir|pyproject.toml]",
		Short: "Emit core metadata (RFC 822) for a pyproject.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := loadProject(ctx, argOrEmpty(args))
			if err != nil {
				reportFailure(err)
				return fmt.Errorf("validation failed")
			}

			out, err := coremeta.Render(p.Meta, coremeta.Options{MetadataVersion: opts.version})
			if err != nil {
				reportFailure(err)
				return fmt.Errorf("emission failed")
			}

			if opts.output == "" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Wrote core metadata for %s", p.Meta.Name)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.version, "metadata-version", "",
		"Metadata-Version to emit (2.1, 2.2 or 2.3; default picks the lowest that fits)")

	return cmd
}
