// Package depgraph renders a project's declared dependencies as a diagram.
// It draws only what the metadata states: the project, its runtime
// requirements and its optional-dependency groups. Nothing is resolved and
// no index is consulted.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tmewes/pymeta/pkg/pep508"
	"github.com/tmewes/pymeta/pkg/project"
)

// Options configures dependency diagram rendering.
type Options struct {
	// Detailed includes version specifiers and markers in edge labels.
	// When false, only package names are shown.
	Detailed bool
}

// ToDOT converts a metadata record's declared dependency sets to Graphviz
// DOT. The resulting DOT string can be rendered with [RenderSVG].
//
// Optional-dependency groups are rendered as dashed grey nodes between the
// project and the group's requirements.
func ToDOT(m *project.Metadata, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := m.CanonicalName()
	fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,bold\", fillcolor=lightblue];\n", root)

	for _, r := range m.Dependencies {
		writeRequirement(&buf, root, r, opts)
	}

	for _, group := range sortedGroups(m.OptionalDependencies) {
		groupID := root + "[" + pep508.CanonicalName(group) + "]"
		fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", groupID)
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", root, groupID)
		for _, r := range m.OptionalDependencies[group] {
			writeRequirement(&buf, groupID, r, opts)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeRequirement(buf *bytes.Buffer, from string, r *pep508.Requirement, opts Options) {
	to := pep508.CanonicalName(r.Name)
	if label := fmtEdgeLabel(r, opts.Detailed); label != "" {
		fmt.Fprintf(buf, "  %q -> %q [label=%q, fontsize=10];\n", from, to, label)
		return
	}
	fmt.Fprintf(buf, "  %q -> %q;\n", from, to)
}

func fmtEdgeLabel(r *pep508.Requirement, detailed bool) string {
	if !detailed {
		return ""
	}
	var parts []string
	if len(r.Specifiers) > 0 {
		parts = append(parts, r.Specifiers.String())
	}
	if r.URL != "" {
		parts = append(parts, "@ "+r.URL)
	}
	if r.Marker != nil {
		parts = append(parts, r.Marker.String())
	}
	return strings.Join(parts, "\n")
}

func sortedGroups(m map[string][]*pep508.Requirement) []string {
	groups := make([]string, 0, len(m))
	for k := range m {
		groups = append(groups, k)
	}
	sort.Strings(groups)
	return groups
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the diagram scales to
// its viewport regardless of the DPI Graphviz assumed.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
