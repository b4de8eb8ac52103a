package project

import (
	"github.com/tmewes/pymeta/pkg/pep440"
	"github.com/tmewes/pymeta/pkg/pep508"
)

// Person is one author or maintainer entry. At least one of the two fields
// is set; order of entries is preserved from the input.
type Person struct {
	Name  string
	Email string
}

// License describes the project license: either an SPDX-style expression
// string, or the legacy table form referencing a file or carrying literal
// text. The three fields are mutually exclusive.
type License struct {
	Expression string
	File       string
	Text       string
}

// Readme references the long description. Exactly one of File and Text is
// set; ContentType is always set (declared, or inferred from the file
// extension for the string form).
type Readme struct {
	File        string
	Text        string
	ContentType string
}

// Metadata is the validated, normalized project metadata record.
//
// A record is built once per [Extract] call and must be treated as
// read-only afterwards; nothing in this module mutates a returned record.
// Fields that may be declared dynamic are nil/empty when they are; list
// fields that were statically declared empty are non-nil empty slices,
// distinguishing them from absent ones.
type Metadata struct {
	Name    string
	Version *pep440.Version // nil when declared dynamic

	Description string
	Readme      *Readme
	License     *License

	Keywords    []string
	Classifiers []string

	Authors     []Person
	Maintainers []Person

	// URLs maps labels (e.g. "homepage") to address strings.
	URLs map[string]string

	Scripts    map[string]string
	GUIScripts map[string]string

	// EntryPoints maps group name to entrypoint name to object reference.
	EntryPoints map[string]map[string]string

	Dependencies []*pep508.Requirement

	// OptionalDependencies maps extra group names (as declared) to their
	// requirement lists.
	OptionalDependencies map[string][]*pep508.Requirement

	RequiresPython pep440.Specifiers

	// Dynamic lists the fields left for the build backend, in declaration
	// order.
	Dynamic []string

	// Tool is the free-form top-level [tool] table, preserved verbatim.
	Tool map[string]any
}

// CanonicalName returns the PEP 503 normalized project name
// (e.g. "Full_Metadata" -> "full-metadata").
func (m *Metadata) CanonicalName() string {
	return pep508.CanonicalName(m.Name)
}

// IsDynamic reports whether the given project field was declared dynamic.
func (m *Metadata) IsDynamic(field string) bool {
	for _, f := range m.Dynamic {
		if f == field {
			return true
		}
	}
	return false
}
