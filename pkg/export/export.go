// Package export renders a metadata record as JSON for downstream tooling.
// Versions, specifiers and requirements appear as their canonical string
// forms, so the output round-trips through any TOML/JSON-agnostic consumer.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tmewes/pymeta/pkg/pep508"
	"github.com/tmewes/pymeta/pkg/project"
)

type record struct {
	Name          string `json:"name"`
	CanonicalName string `json:"canonical_name"`
	Version       string `json:"version,omitempty"`

	Description string   `json:"description,omitempty"`
	Readme      *readme  `json:"readme,omitempty"`
	License     *license `json:"license,omitempty"`

	Keywords    []string `json:"keywords,omitempty"`
	Classifiers []string `json:"classifiers,omitempty"`

	Authors     []person `json:"authors,omitempty"`
	Maintainers []person `json:"maintainers,omitempty"`

	URLs map[string]string `json:"urls,omitempty"`

	Scripts     map[string]string            `json:"scripts,omitempty"`
	GUIScripts  map[string]string            `json:"gui_scripts,omitempty"`
	EntryPoints map[string]map[string]string `json:"entry_points,omitempty"`

	Dependencies         []string            `json:"dependencies,omitempty"`
	OptionalDependencies map[string][]string `json:"optional_dependencies,omitempty"`

	RequiresPython string `json:"requires_python,omitempty"`

	Dynamic []string       `json:"dynamic,omitempty"`
	Tool    map[string]any `json:"tool,omitempty"`
}

type person struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type readme struct {
	File        string `json:"file,omitempty"`
	Text        string `json:"text,omitempty"`
	ContentType string `json:"content_type"`
}

type license struct {
	Expression string `json:"expression,omitempty"`
	File       string `json:"file,omitempty"`
	Text       string `json:"text,omitempty"`
}

// WriteJSON encodes a metadata record as indented JSON and writes it to w.
func WriteJSON(m *project.Metadata, w io.Writer) error {
	out := record{
		Name:          m.Name,
		CanonicalName: m.CanonicalName(),
		Description:   m.Description,
		Keywords:      m.Keywords,
		Classifiers:   m.Classifiers,
		URLs:          m.URLs,
		Scripts:       m.Scripts,
		GUIScripts:    m.GUIScripts,
		EntryPoints:   m.EntryPoints,
		Dynamic:       m.Dynamic,
		Tool:          m.Tool,
	}

	if m.Version != nil {
		out.Version = m.Version.String()
	}
	if m.Readme != nil {
		out.Readme = &readme{File: m.Readme.File, Text: m.Readme.Text, ContentType: m.Readme.ContentType}
	}
	if m.License != nil {
		out.License = &license{Expression: m.License.Expression, File: m.License.File, Text: m.License.Text}
	}
	for _, p := range m.Authors {
		out.Authors = append(out.Authors, person{Name: p.Name, Email: p.Email})
	}
	for _, p := range m.Maintainers {
		out.Maintainers = append(out.Maintainers, person{Name: p.Name, Email: p.Email})
	}
	out.Dependencies = requirementStrings(m.Dependencies)
	if m.OptionalDependencies != nil {
		out.OptionalDependencies = make(map[string][]string, len(m.OptionalDependencies))
		for group, reqs := range m.OptionalDependencies {
			out.OptionalDependencies[group] = requirementStrings(reqs)
		}
	}
	if m.RequiresPython != nil {
		out.RequiresPython = m.RequiresPython.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a metadata record to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(m *project.Metadata, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(m, f)
}

func requirementStrings(reqs []*pep508.Requirement) []string {
	if reqs == nil {
		return nil
	}
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.String())
	}
	return out
}
