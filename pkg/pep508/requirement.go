package pep508

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
	"github.com/tmewes/pymeta/pkg/pep440"
)

// headRe captures the leading project name of a requirement: the maximal
// run of name characters, validated separately by CheckName.
var headRe = regexp.MustCompile(`^[A-Za-z0-9._-]+`)

// Requirement is a parsed PEP 508 dependency declaration, e.g.
//
//	dependency5[other-extra]>1.0; os_name == "nt"
//
// Exactly one of Specifiers and URL may constrain the version; both may be
// empty for a bare name.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers pep440.Specifiers
	URL        string
	Marker     *Marker
}

// Parse parses a requirement string. The input is rejected as a whole on
// any malformed component (name, extras, version specifiers, URL, marker).
func Parse(s string) (*Requirement, error) {
	fail := func() error {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid PEP 508 requirement string %q", s)
	}

	head, markerText := splitMarker(s)
	head = strings.TrimSpace(head)
	if head == "" {
		return nil, fail()
	}

	name := headRe.FindString(head)
	if name == "" || !ValidName(name) {
		return nil, fail()
	}
	rest := strings.TrimSpace(head[len(name):])

	req := &Requirement{Name: name}

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fail()
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if !ValidName(extra) {
				return nil, fail()
			}
			req.Extras = append(req.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	switch {
	case rest == "":
	case strings.HasPrefix(rest, "@"):
		url := strings.TrimSpace(rest[1:])
		if url == "" || strings.ContainsAny(url, " \t") {
			return nil, fail()
		}
		req.URL = url
	default:
		// A parenthesized specifier set is legal: "name (>=1.0)".
		if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
			rest = strings.TrimSpace(rest[1 : len(rest)-1])
		}
		specs, err := pep440.ParseSpecifiers(rest)
		if err != nil || specs == nil {
			return nil, fail()
		}
		req.Specifiers = specs
	}

	if markerText != "" {
		m, err := ParseMarker(markerText)
		if err != nil {
			return nil, fail()
		}
		req.Marker = m
	}

	return req, nil
}

// splitMarker separates the requirement head from the environment marker at
// the first semicolon outside quoted strings.
func splitMarker(s string) (head, marker string) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return s[:i], strings.TrimSpace(s[i+1:])
		}
	}
	return s, ""
}

// CanonicalName returns the PEP 503 normalized form of the requirement name.
func (r *Requirement) CanonicalName() string {
	return CanonicalName(r.Name)
}

// String renders the requirement canonically: original name spelling,
// extras deduplicated and sorted, specifiers in canonical set order, and
// the marker appended after "; ".
func (r *Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)

	if len(r.Extras) > 0 {
		seen := make(map[string]bool, len(r.Extras))
		var extras []string
		for _, e := range r.Extras {
			if !seen[e] {
				seen[e] = true
				extras = append(extras, e)
			}
		}
		sort.Strings(extras)
		b.WriteByte('[')
		b.WriteString(strings.Join(extras, ","))
		b.WriteByte(']')
	}

	b.WriteString(r.Specifiers.String())

	if r.URL != "" {
		b.WriteString("@ ")
		b.WriteString(r.URL)
		if r.Marker != nil {
			b.WriteByte(' ')
		}
	}

	if r.Marker != nil {
		b.WriteString("; ")
		b.WriteString(r.Marker.String())
	}

	return b.String()
}

// WithExtra returns a copy of the requirement whose marker additionally
// constrains the given extra group: `...; <marker> and extra == "group"`.
// The group name is canonicalized per PEP 685.
func (r *Requirement) WithExtra(group string) *Requirement {
	extraMarker, _ := MarkerExpr("extra", "==", CanonicalName(group))
	clone := *r
	clone.Marker = And(r.Marker, extraMarker)
	return &clone
}
