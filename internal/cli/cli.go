// Package cli implements the pymeta command-line interface.
//
// This package provides commands for validating pyproject.toml project
// metadata, emitting core-metadata (RFC 822) and JSON renderings of the
// validated record, and drawing declared-dependency diagrams. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - check: Validate the [project] table and print a report
//   - metadata: Emit the core-metadata (RFC 822) message
//   - export: Emit the validated record as JSON
//   - graph: Draw the declared dependencies as DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/tmewes/pymeta/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tmewes/pymeta/pkg/buildinfo"
)

// Execute runs the pymeta CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "pymeta",
		Short:        "Pymeta validates and exports pyproject.toml project metadata",
		Long:         `Pymeta reads the [project] table of a pyproject.toml file, validates it against the packaging metadata standards (PEP 621, PEP 440, PEP 508), and exports the normalized record as core metadata, JSON, or a dependency diagram.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newMetadataCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newGraphCmd())

	return root.ExecuteContext(ctx)
}
