package cli

import (
	"strings"
	"testing"

	"github.com/tmewes/pymeta/pkg/pep508"
	"github.com/tmewes/pymeta/pkg/project"
)

func TestLintWarnings(t *testing.T) {
	t.Run("bare record warns on missing metadata", func(t *testing.T) {
		warnings := lintWarnings(&project.Metadata{Name: "pkg"})
		joined := strings.Join(warnings, "\n")
		for _, want := range []string{"description", "readme", "license", "requires-python"} {
			if !strings.Contains(joined, want) {
				t.Errorf("expected a warning about %s, got %v", want, warnings)
			}
		}
	})

	t.Run("dynamic fields are not warned about", func(t *testing.T) {
		m := &project.Metadata{Name: "pkg", Dynamic: []string{"description", "readme"}}
		for _, w := range lintWarnings(m) {
			if strings.Contains(w, "description") || strings.Contains(w, "readme") {
				t.Errorf("unexpected warning %q for dynamic field", w)
			}
		}
	})

	t.Run("empty extra groups", func(t *testing.T) {
		m := &project.Metadata{
			Name: "pkg",
			OptionalDependencies: map[string][]*pep508.Requirement{
				"docs": {},
				"test": {{Name: "pytest"}},
			},
		}
		var found bool
		for _, w := range lintWarnings(m) {
			if strings.Contains(w, `extra group "docs" is empty`) {
				found = true
			}
			if strings.Contains(w, `"test"`) {
				t.Errorf("unexpected warning for non-empty group: %q", w)
			}
		}
		if !found {
			t.Error("expected a warning for the empty docs group")
		}
	})
}
