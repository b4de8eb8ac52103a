// Package pep440 parses and normalizes Python version numbers and version
// specifiers as defined by PEP 440.
//
// Parsing is strict: anything that does not match the public version scheme
// is rejected with an INVALID_FORMAT error naming the offending value.
// Parsed values render back in canonical form, so normalization is
// idempotent: Parse(v.String()).String() == v.String().
//
// All compiled patterns are package-level and read-only after init, making
// the package safe for concurrent use.
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

// versionRe is the canonical PEP 440 version pattern (Appendix B of the PEP),
// anchored and case-insensitive.
var versionRe = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<preL>alpha|a|beta|b|preview|pre|c|rc)[-_.]?(?P<preN>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<postN1>[0-9]+))|(?:[-_.]?(?P<postL>post|rev|r)[-_.]?(?P<postN2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?dev[-_.]?(?P<devN>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

// PrePhase identifies a pre-release phase in canonical spelling.
type PrePhase string

// Canonical pre-release phases, ordered a < b < rc.
const (
	PhaseAlpha PrePhase = "a"
	PhaseBeta  PrePhase = "b"
	PhaseRC    PrePhase = "rc"
)

// prePhases maps every accepted spelling to its canonical phase.
var prePhases = map[string]PrePhase{
	"a": PhaseAlpha, "alpha": PhaseAlpha,
	"b": PhaseBeta, "beta": PhaseBeta,
	"c": PhaseRC, "rc": PhaseRC, "pre": PhaseRC, "preview": PhaseRC,
}

// Pre is a pre-release segment such as "rc1".
type Pre struct {
	Phase  PrePhase
	Number int
}

// Version is a parsed PEP 440 version.
// The zero value is not a valid version; use Parse.
type Version struct {
	Epoch   int
	Release []int
	Pre     *Pre
	Post    *int // post-release number, nil if absent
	Dev     *int // dev-release number, nil if absent
	Local   string
}

// Parse parses s as a PEP 440 version, normalizing alternate spellings
// (e.g. "1.0-alpha.1" parses the same as "1.0a1").
func Parse(s string) (*Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid PEP 440 version %q", s)
	}
	g := func(name string) string { return m[versionRe.SubexpIndex(name)] }

	v := &Version{}
	if e := g("epoch"); e != "" {
		v.Epoch, _ = strconv.Atoi(e)
	}
	for _, part := range strings.Split(g("release"), ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			// Release segments longer than an int64 are rejected rather
			// than silently truncated.
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid PEP 440 version %q", s)
		}
		v.Release = append(v.Release, n)
	}
	if g("pre") != "" {
		v.Pre = &Pre{
			Phase:  prePhases[strings.ToLower(g("preL"))],
			Number: atoiDefault(g("preN"), 0),
		}
	}
	if g("post") != "" {
		n := atoiDefault(g("postN1"), atoiDefault(g("postN2"), 0))
		v.Post = &n
	}
	if g("dev") != "" {
		n := atoiDefault(g("devN"), 0)
		v.Dev = &n
	}
	if l := g("local"); l != "" {
		v.Local = normalizeLocal(l)
	}
	return v, nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// normalizeLocal lowercases a local version label and replaces the
// alternate separators "-" and "_" with ".".
func normalizeLocal(local string) string {
	local = strings.ToLower(local)
	local = strings.ReplaceAll(local, "-", ".")
	return strings.ReplaceAll(local, "_", ".")
}

// String renders the version in canonical PEP 440 form.
func (v *Version) String() string {
	var b strings.Builder
	if v.Epoch != 0 {
		fmt.Fprintf(&b, "%d!", v.Epoch)
	}
	for i, r := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(r))
	}
	if v.Pre != nil {
		fmt.Fprintf(&b, "%s%d", v.Pre.Phase, v.Pre.Number)
	}
	if v.Post != nil {
		fmt.Fprintf(&b, ".post%d", *v.Post)
	}
	if v.Dev != nil {
		fmt.Fprintf(&b, ".dev%d", *v.Dev)
	}
	if v.Local != "" {
		fmt.Fprintf(&b, "+%s", v.Local)
	}
	return b.String()
}

// IsPrerelease reports whether the version is a pre-release or dev-release.
func (v *Version) IsPrerelease() bool {
	return v.Pre != nil || v.Dev != nil
}

// BaseEquals reports whether v and o have the same epoch and release,
// ignoring pre/post/dev/local segments.
func (v *Version) BaseEquals(o *Version) bool {
	if v.Epoch != o.Epoch {
		return false
	}
	return cmpRelease(v.Release, o.Release) == 0
}

// Compare returns -1, 0, or 1 ordering v relative to o per PEP 440.
// Local version labels are compared segment-wise as a tiebreaker.
func (v *Version) Compare(o *Version) int {
	if v.Epoch != o.Epoch {
		return cmpInt(v.Epoch, o.Epoch)
	}
	if c := cmpRelease(v.Release, o.Release); c != 0 {
		return c
	}
	if c := cmpPre(v, o); c != 0 {
		return c
	}
	if c := cmpOptional(v.Post, o.Post, -1); c != 0 {
		return c
	}
	if c := cmpOptional(v.Dev, o.Dev, 1); c != 0 {
		return c
	}
	return cmpLocal(v.Local, o.Local)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// cmpRelease compares release tuples, treating missing trailing segments
// as zero (1.0 == 1.0.0).
func cmpRelease(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

var phaseRank = map[PrePhase]int{PhaseAlpha: 0, PhaseBeta: 1, PhaseRC: 2}

// cmpPre orders the pre-release segment. A bare dev-release (1.0.dev1) sorts
// before any pre-release of the same version; a version without a pre
// segment sorts after all of its pre-releases.
func cmpPre(v, o *Version) int {
	rank := func(x *Version) (int, int, int) {
		switch {
		case x.Pre == nil && x.Post == nil && x.Dev != nil:
			return -1, 0, 0 // dev-only release sorts first
		case x.Pre == nil:
			return 1, 0, 0 // final release sorts after pre-releases
		default:
			return 0, phaseRank[x.Pre.Phase], x.Pre.Number
		}
	}
	va, vb, vc := rank(v)
	oa, ob, oc := rank(o)
	if c := cmpInt(va, oa); c != 0 {
		return c
	}
	if c := cmpInt(vb, ob); c != 0 {
		return c
	}
	return cmpInt(vc, oc)
}

// cmpOptional compares optional numeric segments where absence sorts either
// first (absent = -1, e.g. post) or last (absent = 1, e.g. dev).
func cmpOptional(a, b *int, absent int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return absent
	case b == nil:
		return -absent
	default:
		return cmpInt(*a, *b)
	}
}

// cmpLocal compares local version labels segment-wise: numeric segments
// compare numerically and sort after alphanumeric ones, per PEP 440.
func cmpLocal(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aErr := strconv.Atoi(as[i])
		bn, bErr := strconv.Atoi(bs[i])
		switch {
		case aErr == nil && bErr == nil:
			if c := cmpInt(an, bn); c != 0 {
				return c
			}
		case aErr == nil:
			return 1 // numeric sorts after alphanumeric
		case bErr == nil:
			return -1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(as), len(bs))
}
