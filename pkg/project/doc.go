// Package project extracts and validates PEP 621 project metadata.
//
// # Overview
//
// The entry point is [Extract]: it takes the raw mapping decoded from a
// pyproject.toml (any TOML decoder producing map[string]any works, the
// package itself performs no I/O) and returns either a fully validated
// [Metadata] record or a structured error from pkg/errors carrying the
// offending field path.
//
// Validation walks a fixed table of per-field validators in declaration
// order — a single pass, no intermediate states. The first error wins and
// is returned with full context; the extractor never coerces a malformed
// value into a best-effort result.
//
// # Dynamic fields
//
// A field listed in project.dynamic is intentionally unset in the file and
// supplied later by the build backend. Every field except "name" may be
// dynamic. A field that is listed dynamic AND statically present is
// rejected: the file would otherwise be ambiguous about which value a
// build tool should honor.
//
// # Extension namespace
//
// The top-level "tool" table is free-form per PEP 518. It is preserved on
// the record verbatim and never validated. Strict unknown-field checking
// applies to keys inside "project" only.
//
// # Determinism and concurrency
//
// For identical input the extractor produces an identical record or an
// identical error: table-shaped fields are processed in sorted key order,
// and nothing depends on environment, randomness, or I/O. Package-level
// state is limited to compiled patterns and the fixed field table, so
// concurrent extractions over independent inputs are safe.
package project
