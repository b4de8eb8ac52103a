package cli

import (
	goerrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/project"
)

// newCheckCmd creates the check command, which validates a pyproject.toml
// and prints a summary of the normalized record.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir|pyproject.toml]",
		Short: "Validate the [project] table of a pyproject.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			p, err := loadProject(ctx, argOrEmpty(args))
			if err != nil {
				reportFailure(err)
				return fmt.Errorf("validation failed")
			}

			m := p.Meta
			prog.done(fmt.Sprintf("Validated %s", m.Name))

			printSuccess("%s is valid", p.Path)
			printKeyValue("name", m.Name)
			printKeyValue("canonical name", m.CanonicalName())
			if m.Version != nil {
				printKeyValue("version", m.Version.String())
			}
			if len(m.Dynamic) > 0 {
				printKeyValue("dynamic", strings.Join(m.Dynamic, ", "))
			}
			if m.RequiresPython != nil {
				printKeyValue("requires-python", m.RequiresPython.String())
			}

			printStats(m)
			for _, w := range lintWarnings(m) {
				printWarning("%s", w)
			}
			return nil
		},
	}
}

// reportFailure prints a validation failure, using the structured form when
// the error carries a code and field path.
func reportFailure(err error) {
	var e *errors.Error
	if goerrors.As(err, &e) {
		printValidationError(string(e.Code), e.Field, e.Message)
		if e.Cause != nil {
			printDetail("%v", e.Cause)
		}
		return
	}
	printError("%v", err)
}

// printStats summarizes the declared dependency surface on one line.
func printStats(m *project.Metadata) {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d dependencies", len(m.Dependencies)))
	if n := len(m.OptionalDependencies); n > 0 {
		parts = append(parts, fmt.Sprintf("%d extras", n))
	}
	if n := len(m.Scripts) + len(m.GUIScripts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d scripts", n))
	}
	printDetail("%s", strings.Join(parts, " · "))
}

// lintWarnings flags metadata that is valid but usually unintended.
func lintWarnings(m *project.Metadata) []string {
	var warnings []string
	if m.Description == "" && !m.IsDynamic("description") {
		warnings = append(warnings, "no description set")
	}
	if m.Readme == nil && !m.IsDynamic("readme") {
		warnings = append(warnings, "no readme declared")
	}
	if m.License == nil && !m.IsDynamic("license") {
		warnings = append(warnings, "no license declared")
	}
	if m.RequiresPython == nil && !m.IsDynamic("requires-python") {
		warnings = append(warnings, "no requires-python constraint")
	}

	// Empty extras are emitted as Provides-Extra with no requirements.
	var empty []string
	for group, reqs := range m.OptionalDependencies {
		if len(reqs) == 0 {
			empty = append(empty, group)
		}
	}
	sort.Strings(empty)
	for _, group := range empty {
		warnings = append(warnings, fmt.Sprintf("extra group %q is empty", group))
	}
	return warnings
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
