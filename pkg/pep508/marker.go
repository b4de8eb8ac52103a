package pep508

import (
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

// Environment variables a marker may reference, per PEP 508.
var markerVars = map[string]bool{
	"os_name":                        true,
	"sys_platform":                   true,
	"platform_machine":               true,
	"platform_python_implementation": true,
	"platform_release":               true,
	"platform_system":                true,
	"platform_version":               true,
	"python_version":                 true,
	"python_full_version":            true,
	"implementation_name":            true,
	"implementation_version":         true,
	"extra":                          true,
}

// Comparison operators accepted inside a marker expression.
var markerOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "<": true, ">": true,
	"~=": true, "===": true, "in": true, "not in": true,
}

// Marker is a parsed environment marker such as
//
//	os_name == "nt" and python_version < "3.10"
//
// The zero value is unusable; obtain markers from ParseMarker or And.
type Marker struct {
	node markerNode
}

type markerNode interface {
	// render writes the canonical spelling. insideAnd reports whether the
	// enclosing operator is an "and"; "or" nodes under an "and" are wrapped
	// in parentheses.
	render(b *strings.Builder, insideAnd bool)
	isOr() bool
}

// markerExpr is a single comparison: variable-or-literal op variable-or-literal.
type markerExpr struct {
	lhs, rhs markerValue
	op       string
}

type markerValue struct {
	isVar bool
	text  string
}

func (v markerValue) render(b *strings.Builder) {
	if v.isVar {
		b.WriteString(v.text)
		return
	}
	b.WriteByte('"')
	b.WriteString(v.text)
	b.WriteByte('"')
}

func (e *markerExpr) render(b *strings.Builder, _ bool) {
	e.lhs.render(b)
	b.WriteByte(' ')
	b.WriteString(e.op)
	b.WriteByte(' ')
	e.rhs.render(b)
}

func (e *markerExpr) isOr() bool { return false }

// markerJoin is an "and"/"or" chain of sub-expressions.
type markerJoin struct {
	op    string // "and" or "or"
	nodes []markerNode
}

func (j *markerJoin) render(b *strings.Builder, insideAnd bool) {
	wrap := insideAnd && j.op == "or"
	if wrap {
		b.WriteByte('(')
	}
	for i, n := range j.nodes {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(j.op)
			b.WriteByte(' ')
		}
		n.render(b, j.op == "and")
	}
	if wrap {
		b.WriteByte(')')
	}
}

func (j *markerJoin) isOr() bool { return j.op == "or" }

// String returns the canonical marker text.
func (m *Marker) String() string {
	var b strings.Builder
	m.node.render(&b, false)
	return b.String()
}

// And returns a marker equivalent to "m and extra", parenthesizing either
// side as needed. Used when folding optional-dependency groups into
// Requires-Dist entries. Either argument may be nil.
func And(m, other *Marker) *Marker {
	switch {
	case m == nil:
		return other
	case other == nil:
		return m
	}
	return &Marker{node: &markerJoin{op: "and", nodes: []markerNode{m.node, other.node}}}
}

// MarkerExpr builds a single-comparison marker such as `extra == "test"`.
// The variable must be a recognized environment variable.
func MarkerExpr(variable, op, literal string) (*Marker, error) {
	if !markerVars[variable] {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown environment marker variable %q", variable)
	}
	if !markerOps[op] {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown marker operator %q", op)
	}
	return &Marker{node: &markerExpr{
		lhs: markerValue{isVar: true, text: variable},
		op:  op,
		rhs: markerValue{text: literal},
	}}, nil
}

// ParseMarker parses an environment marker expression.
func ParseMarker(s string) (*Marker, error) {
	toks, err := lexMarker(s)
	if err != nil {
		return nil, err
	}
	p := &markerParser{toks: toks, src: s}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.fail()
	}
	return &Marker{node: node}, nil
}

type markerToken struct {
	kind string // "ident", "str", "op", "lparen", "rparen"
	text string
}

func lexMarker(s string) ([]markerToken, error) {
	var toks []markerToken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, markerToken{kind: "lparen"})
			i++
		case c == ')':
			toks = append(toks, markerToken{kind: "rparen"})
			i++
		case c == '\'' || c == '"':
			j := strings.IndexByte(s[i+1:], c)
			if j < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unterminated string in marker %q", s)
			}
			toks = append(toks, markerToken{kind: "str", text: s[i+1 : i+1+j]})
			i += j + 2
		case strings.ContainsRune("<>=!~", rune(c)):
			j := i
			for j < len(s) && strings.ContainsRune("<>=!~", rune(s[j])) {
				j++
			}
			toks = append(toks, markerToken{kind: "op", text: s[i:j]})
			i = j
		case isIdentByte(c):
			j := i
			for j < len(s) && (isIdentByte(s[j]) || s[j] >= '0' && s[j] <= '9') {
				j++
			}
			toks = append(toks, markerToken{kind: "ident", text: s[i:j]})
			i = j
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unexpected character %q in marker %q", string(c), s)
		}
	}
	return toks, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

type markerParser struct {
	toks []markerToken
	pos  int
	src  string
}

func (p *markerParser) eof() bool { return p.pos >= len(p.toks) }

func (p *markerParser) peek() markerToken {
	if p.eof() {
		return markerToken{}
	}
	return p.toks[p.pos]
}

func (p *markerParser) fail() error {
	return errors.New(errors.ErrCodeInvalidFormat, "invalid environment marker %q", p.src)
}

// parseOr implements the usual precedence: or binds looser than and.
func (p *markerParser) parseOr() (markerNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	nodes := []markerNode{left}
	for p.peek().kind == "ident" && p.peek().text == "or" {
		p.pos++
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &markerJoin{op: "or", nodes: nodes}, nil
}

func (p *markerParser) parseAnd() (markerNode, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	nodes := []markerNode{left}
	for p.peek().kind == "ident" && p.peek().text == "and" {
		p.pos++
		n, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return &markerJoin{op: "and", nodes: nodes}, nil
}

func (p *markerParser) parseAtom() (markerNode, error) {
	if p.peek().kind == "lparen" {
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != "rparen" {
			return nil, p.fail()
		}
		p.pos++
		return inner, nil
	}
	return p.parseComparison()
}

func (p *markerParser) parseComparison() (markerNode, error) {
	lhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	op, err := p.parseOp()
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if lhs.isVar == rhs.isVar {
		// One side must be an environment variable, the other a literal.
		return nil, p.fail()
	}
	return &markerExpr{lhs: lhs, op: op, rhs: rhs}, nil
}

func (p *markerParser) parseValue() (markerValue, error) {
	t := p.peek()
	switch t.kind {
	case "str":
		p.pos++
		return markerValue{text: t.text}, nil
	case "ident":
		if !markerVars[t.text] {
			return markerValue{}, errors.New(errors.ErrCodeInvalidFormat,
				"unknown environment marker variable %q", t.text)
		}
		p.pos++
		return markerValue{isVar: true, text: t.text}, nil
	}
	return markerValue{}, p.fail()
}

func (p *markerParser) parseOp() (string, error) {
	t := p.peek()
	switch {
	case t.kind == "op" && markerOps[t.text]:
		p.pos++
		return t.text, nil
	case t.kind == "ident" && t.text == "in":
		p.pos++
		return "in", nil
	case t.kind == "ident" && t.text == "not":
		p.pos++
		if p.peek().kind != "ident" || p.peek().text != "in" {
			return "", p.fail()
		}
		p.pos++
		return "not in", nil
	}
	return "", p.fail()
}
