// Package pep508 parses Python dependency declarations: requirement
// specifier strings per PEP 508, project/extras name rules per PEP 503 and
// PEP 685, and environment markers.
//
// Everything here is pure string processing. Malformed input is rejected
// with an INVALID_FORMAT error carrying the offending text; parsed values
// render back in the canonical spelling used for core-metadata emission.
package pep508

import (
	"regexp"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

// nameRe is the PEP 508 project-name pattern: ASCII letters and digits,
// with periods, underscores and hyphens allowed in the middle.
var nameRe = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// canonicalRe collapses runs of the interchangeable separator characters.
var canonicalRe = regexp.MustCompile(`[-_.]+`)

// ValidName reports whether name is a well-formed project name.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// CheckName validates name, returning a descriptive error on failure.
// The wording mirrors the upstream packaging tooling so users see the
// same diagnosis regardless of toolchain.
func CheckName(name string) error {
	if ValidName(name) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"invalid project name %q. A valid name consists only of ASCII letters and numbers, "+
			"period, underscore and hyphen. It must start and end with a letter or number", name)
}

// CanonicalName normalizes a project or extra name per PEP 503/685:
// lowercase with every run of "-", "_" and "." replaced by a single "-".
// Canonical names compare equal across all accepted spellings
// ("My.Package", "my_package" and "my-package" all canonicalize the same).
func CanonicalName(name string) string {
	return strings.ToLower(canonicalRe.ReplaceAllString(name, "-"))
}
