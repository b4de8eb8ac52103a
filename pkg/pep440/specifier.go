package pep440

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

// specifierRe splits one clause into operator and version text.
var specifierRe = regexp.MustCompile(`^\s*(~=|===|==|!=|<=|>=|<|>)\s*(.+?)\s*$`)

// Specifier is a single version clause such as ">=3.8" or "==1.0.*".
type Specifier struct {
	Op      string // one of ~= === == != <= >= < >
	Version string // normalized version text, possibly with a ".*" suffix
}

// ParseSpecifier parses one clause.
//
// The version part must be a valid PEP 440 version, except that "==" and
// "!=" accept a ".*" wildcard suffix and "===" accepts an arbitrary string.
// "~=" requires at least two release segments and forbids wildcards.
func ParseSpecifier(s string) (Specifier, error) {
	m := specifierRe.FindStringSubmatch(s)
	if m == nil {
		return Specifier{}, errors.New(errors.ErrCodeInvalidFormat, "invalid version specifier %q", s)
	}
	op, ver := m[1], m[2]

	if op == "===" {
		// Arbitrary equality compares as an opaque string.
		return Specifier{Op: op, Version: ver}, nil
	}

	wildcard := strings.HasSuffix(ver, ".*")
	if wildcard {
		if op != "==" && op != "!=" {
			return Specifier{}, errors.New(errors.ErrCodeInvalidFormat,
				"wildcard not allowed with operator %q in %q", op, s)
		}
		ver = strings.TrimSuffix(ver, ".*")
	}

	v, err := Parse(ver)
	if err != nil {
		return Specifier{}, errors.New(errors.ErrCodeInvalidFormat, "invalid version specifier %q", s)
	}
	if wildcard && (v.Pre != nil || v.Post != nil || v.Dev != nil || v.Local != "") {
		return Specifier{}, errors.New(errors.ErrCodeInvalidFormat, "invalid version specifier %q", s)
	}
	if op == "~=" && len(v.Release) < 2 {
		return Specifier{}, errors.New(errors.ErrCodeInvalidFormat,
			"compatible-release operator requires at least two version segments in %q", s)
	}
	if v.Local != "" && op != "==" && op != "!=" {
		return Specifier{}, errors.New(errors.ErrCodeInvalidFormat,
			"local version label not allowed with operator %q in %q", op, s)
	}

	norm := v.String()
	if wildcard {
		norm += ".*"
	}
	return Specifier{Op: op, Version: norm}, nil
}

// String renders the clause canonically, without internal whitespace.
func (s Specifier) String() string {
	return s.Op + s.Version
}

// Match reports whether v satisfies the clause.
func (s Specifier) Match(v *Version) bool {
	if s.Op == "===" {
		return v.String() == s.Version
	}

	if strings.HasSuffix(s.Version, ".*") {
		prefix, _ := Parse(strings.TrimSuffix(s.Version, ".*"))
		ok := v.Epoch == prefix.Epoch && releaseHasPrefix(v.Release, prefix.Release)
		if s.Op == "!=" {
			return !ok
		}
		return ok
	}

	sv, _ := Parse(s.Version)
	cmp := v.Compare(sv)
	switch s.Op {
	case "==":
		// Equality ignores the candidate's local label unless the clause
		// pins one.
		if sv.Local == "" {
			stripped := *v
			stripped.Local = ""
			return stripped.Compare(sv) == 0
		}
		return cmp == 0
	case "!=":
		if sv.Local == "" {
			stripped := *v
			stripped.Local = ""
			return stripped.Compare(sv) != 0
		}
		return cmp != 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	case "<":
		// An exclusive upper bound does not admit pre-releases of the
		// boundary version itself unless the boundary is one.
		if cmp >= 0 {
			return false
		}
		if !sv.IsPrerelease() && v.IsPrerelease() && v.BaseEquals(sv) {
			return false
		}
		return true
	case ">":
		// An exclusive lower bound does not admit post-releases of the
		// boundary version unless the boundary is one.
		if cmp <= 0 {
			return false
		}
		if sv.Post == nil && v.Post != nil && v.BaseEquals(sv) {
			return false
		}
		return true
	case "~=":
		if cmp < 0 {
			return false
		}
		return releaseHasPrefix(v.Release, sv.Release[:len(sv.Release)-1])
	}
	return false
}

func releaseHasPrefix(release, prefix []int) bool {
	for i, p := range prefix {
		var r int
		if i < len(release) {
			r = release[i]
		}
		if r != p {
			return false
		}
	}
	return true
}

// Specifiers is a comma-joined set of clauses, all of which must match.
type Specifiers []Specifier

// ParseSpecifiers parses a specifier set such as ">=3.8,<4". The empty
// string yields an empty set that matches every version.
func ParseSpecifiers(s string) (Specifiers, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var set Specifiers
	for _, part := range strings.Split(s, ",") {
		sp, err := ParseSpecifier(part)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid version specifier %q", s)
		}
		set = append(set, sp)
	}
	return set, nil
}

// String renders the set canonically: each clause normalized, sorted, and
// comma-joined. Sorting makes the rendering independent of declaration
// order, so normalization is idempotent.
func (s Specifiers) String() string {
	parts := make([]string, len(s))
	for i, sp := range s {
		parts[i] = sp.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Match reports whether v satisfies every clause in the set.
func (s Specifiers) Match(v *Version) bool {
	for _, sp := range s {
		if !sp.Match(v) {
			return false
		}
	}
	return true
}
