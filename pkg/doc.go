// Package pkg provides the core libraries for pymeta pyproject.toml
// metadata validation.
//
// # Overview
//
// Pymeta turns the [project] table of a pyproject.toml into a validated,
// normalized metadata record, or a typed validation error naming the exact
// offending field. The pkg directory is organized by concern:
//
//  1. [errors] - Structured validation errors (code + field path + message)
//  2. [pep440] - Version and version-specifier parsing, ordering, matching
//  3. [pep508] - Requirement strings, environment markers, name normalization
//  4. [project] - The extractor: raw TOML mapping → metadata record
//  5. [coremeta] - Core-metadata (RFC 822) emission
//  6. [export] - JSON export of the record
//  7. [depgraph] - Declared-dependency diagrams (DOT/SVG via Graphviz)
//
// # Architecture
//
// The typical data flow through pymeta:
//
//	pyproject.toml
//	         ↓
//	    TOML decoder (map[string]any)
//	         ↓
//	    [project] package (validate + normalize)
//	         ↓
//	    [coremeta] / [export] / [depgraph] output
//
// The [project] extractor is pure: it never reads files, consults the
// environment, or performs network access. File references (readme and
// license) are resolved by the CLI layer in internal/cli.
//
// # Quick Start
//
// Validate a decoded pyproject.toml and emit core metadata:
//
//	var doc map[string]any
//	_ = toml.Unmarshal(data, &doc)
//
//	meta, err := project.Extract(doc)
//	if err != nil {
//	    // err is a *errors.Error carrying a code and field path
//	}
//	out, _ := coremeta.Render(meta, coremeta.Options{})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/project/...   # Specific package
//
// [errors]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/errors
// [pep440]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/pep440
// [pep508]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/pep508
// [project]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/project
// [coremeta]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/coremeta
// [export]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/export
// [depgraph]: https://pkg.go.dev/github.com/tmewes/pymeta/pkg/depgraph
package pkg
