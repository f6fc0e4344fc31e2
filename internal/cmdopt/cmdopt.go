// Package cmdopt models the option surface of a Gerrit command: a declared
// catalog of flags, choices, and valued options, each optionally gated by a
// server version range, plus parsing of caller-supplied option strings into
// mutable selections that render back to a canonical command-line fragment.
package cmdopt

import (
	"fmt"

	"github.com/gersh-io/gersh/internal/semver"
)

// Kind classifies an option's value arity.
type Kind int

const (
	KindFlag Kind = iota
	KindChoice
	KindValued
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindChoice:
		return "choice"
	case KindValued:
		return "valued"
	default:
		return "unknown"
	}
}

// Spec declares a single option: its wire flags, value arity, and the
// server versions that honor it. Build specs with Flag, Choice, or Valued
// and refine them with the chaining methods; a Spec is validated when it
// joins a Catalog.
type Spec struct {
	key        string
	long       string
	short      string
	kind       Kind
	repeatable bool
	choices    []string
	rangeStr   string
	supported  semver.Range
}

// Flag declares a boolean option, e.g. Flag("tree", "t"). Pass "" for no
// short form.
func Flag(long, short string) Spec {
	return Spec{key: long, long: long, short: short, kind: KindFlag}
}

// Choice declares an option whose value must come from an enumerated set,
// e.g. Choice("type", "", "code", "permissions", "all").
func Choice(long, short string, choices ...string) Spec {
	return Spec{key: long, long: long, short: short, kind: KindChoice, choices: choices}
}

// Valued declares an option taking a free-form value,
// e.g. Valued("reason", "").
func Valued(long, short string) Spec {
	return Spec{key: long, long: long, short: short, kind: KindValued}
}

// Repeatable marks the option as allowed more than once: a repeatable flag
// becomes an occurrence counter, a repeatable choice or valued option
// accumulates a list.
func (s Spec) Repeatable() Spec {
	s.repeatable = true
	return s
}

// SupportedIn gates the option to the server versions matching the given
// range string, e.g. ">=2.5". The string is parsed when the Spec joins a
// catalog; a malformed range fails catalog construction.
func (s Spec) SupportedIn(rangeStr string) Spec {
	s.rangeStr = rangeStr
	return s
}

// Key is the stable identifier for the option, its long name.
func (s Spec) Key() string { return s.key }

// Supported is the version range gating the option; empty means all
// versions.
func (s Spec) Supported() semver.Range { return s.supported }

func (s *Spec) validate() error {
	if !validFlagName(s.long) {
		return &ConfigError{Msg: fmt.Sprintf("invalid long flag name %q", s.long)}
	}
	if s.short != "" && (len(s.short) != 1 || !flagNameChar(rune(s.short[0]))) {
		return &ConfigError{Msg: fmt.Sprintf("invalid short flag %q for --%s", s.short, s.long)}
	}
	if s.kind == KindChoice && len(s.choices) == 0 {
		return &ConfigError{Msg: fmt.Sprintf("choice option --%s has no choices", s.long)}
	}

	r, err := semver.ParseRange(s.rangeStr)
	if err != nil {
		return &ConfigError{Msg: fmt.Sprintf("option --%s", s.long), Err: err}
	}
	s.supported = r
	return nil
}

func validFlagName(name string) bool {
	if name == "" || name[0] == '-' {
		return false
	}
	for _, r := range name {
		if !flagNameChar(r) && r != '-' {
			return false
		}
	}
	return true
}

func flagNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// Catalog is the immutable, ordered set of options a command supports.
// Catalogs are built once per command type and shared across invocations;
// they are never mutated after construction.
type Catalog struct {
	specs []Spec
	byKey map[string]int
}

// NewCatalog validates the specs and builds a catalog. Duplicate keys,
// malformed flag names, and unparsable version ranges all fail with a
// ConfigError.
func NewCatalog(specs ...Spec) (*Catalog, error) {
	c := &Catalog{
		specs: make([]Spec, len(specs)),
		byKey: make(map[string]int, len(specs)),
	}
	copy(c.specs, specs)

	for i := range c.specs {
		s := &c.specs[i]
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[s.key]; dup {
			return nil, &ConfigError{Msg: fmt.Sprintf("duplicate option key %q", s.key)}
		}
		c.byKey[s.key] = i
	}

	return c, nil
}

// MustCatalog is NewCatalog for package-level command constants.
func MustCatalog(specs ...Spec) *Catalog {
	c, err := NewCatalog(specs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of declared options.
func (c *Catalog) Len() int { return len(c.specs) }

// Specs returns the declared options in declaration order.
func (c *Catalog) Specs() []Spec {
	out := make([]Spec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Spec returns the declared option for key.
func (c *Catalog) Spec(key string) (Spec, bool) {
	s, ok := c.lookup(key)
	if !ok {
		return Spec{}, false
	}
	return *s, true
}

func (c *Catalog) lookup(key string) (*Spec, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return &c.specs[i], true
}

func (c *Catalog) specForToken(tok string) *Spec {
	for i := range c.specs {
		s := &c.specs[i]
		if tok == "--"+s.long || (s.short != "" && tok == "-"+s.short) {
			return s
		}
	}
	return nil
}
