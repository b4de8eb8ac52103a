package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmewes/pymeta/pkg/depgraph"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path (stdout if empty)
	format   string // "dot" or "svg"
	detailed bool   // include specifiers and markers in edge labels
}

// newGraphCmd creates the graph command, which draws the declared
// dependencies of a project as a diagram.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph [dir|pyproject.toml]",
		Short: "Draw the declared dependencies as a DOT or SVG diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := loadProject(ctx, argOrEmpty(args))
			if err != nil {
				reportFailure(err)
				return fmt.Errorf("validation failed")
			}

			dot := depgraph.ToDOT(p.Meta, depgraph.Options{Detailed: opts.detailed})

			var out []byte
			switch opts.format {
			case "dot":
				out = []byte(dot)
			case "svg":
				logger.Debug("Rendering SVG via Graphviz")
				out, err = depgraph.RenderSVG(dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", opts.format)
			}

			if opts.output == "" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Wrote dependency graph for %s", p.Meta.Name)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with specifiers and markers")

	return cmd
}
