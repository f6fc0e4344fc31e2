package semver

import (
	"fmt"
	"strings"
)

type operator int

const (
	opLT operator = iota
	opLE
	opEQ
	opGE
	opGT
)

func (o operator) String() string {
	switch o {
	case opLT:
		return "<"
	case opLE:
		return "<="
	case opEQ:
		return "=="
	case opGE:
		return ">="
	case opGT:
		return ">"
	default:
		return "?"
	}
}

type term struct {
	op operator
	v  Version
}

func (t term) matches(v Version) bool {
	c := v.Compare(t.v)
	switch t.op {
	case opLT:
		return c < 0
	case opLE:
		return c <= 0
	case opEQ:
		return c == 0
	case opGE:
		return c >= 0
	case opGT:
		return c > 0
	}
	return false
}

// Range is a conjunction of comparator terms. The zero value is the empty
// range, which matches every version.
type Range struct {
	terms []term
	src   string
}

// ParseRange reads a comma-separated list of comparator terms, e.g.
// ">=2.6,<2.9". An empty string yields the always-matching empty range.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, nil
	}

	var terms []term
	for _, raw := range strings.Split(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Range{}, fmt.Errorf("version range %q: empty term", s)
		}

		t, err := parseTerm(raw)
		if err != nil {
			return Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		terms = append(terms, t)
	}

	return Range{terms: terms, src: s}, nil
}

// MustParseRange is ParseRange for package-level catalog constants.
func MustParseRange(s string) Range {
	r, err := ParseRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseTerm(s string) (term, error) {
	var op operator
	var rest string

	switch {
	case strings.HasPrefix(s, "<="):
		op, rest = opLE, s[2:]
	case strings.HasPrefix(s, ">="):
		op, rest = opGE, s[2:]
	case strings.HasPrefix(s, "=="):
		op, rest = opEQ, s[2:]
	case strings.HasPrefix(s, "<"):
		op, rest = opLT, s[1:]
	case strings.HasPrefix(s, ">"):
		op, rest = opGT, s[1:]
	default:
		return term{}, fmt.Errorf("term %q has no comparison operator", s)
	}

	v, err := Parse(rest)
	if err != nil {
		return term{}, err
	}

	return term{op: op, v: v}, nil
}

// Matches reports whether v satisfies every term of the range. The empty
// range matches everything.
func (r Range) Matches(v Version) bool {
	for _, t := range r.terms {
		if !t.matches(v) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the range has no terms.
func (r Range) IsEmpty() bool {
	return len(r.terms) == 0
}

func (r Range) String() string {
	return r.src
}
