package cmdopt

import (
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/gersh-io/gersh/internal/semver"
)

// Selection holds the current value of every option in a catalog. A
// Selection starts out as the result of parsing an option string and stays
// mutable afterwards so a command can force options before execution. The
// catalog reference is read-only, used for rendering and validation.
type Selection struct {
	catalog *Catalog
	values  map[string]Value
}

// Parse tokenizes text with shell-style word splitting and matches the
// tokens against the catalog. Unknown flags, missing values, and invalid
// choices fail with a ParseError naming the offending token. Options absent
// from text are present in the Selection with an Absent value.
func (c *Catalog) Parse(text string) (*Selection, error) {
	tokens, err := shlex.Split(text)
	if err != nil {
		return nil, &ParseError{Msg: fmt.Sprintf("tokenizing %q: %v", text, err)}
	}

	sel := &Selection{
		catalog: c,
		values:  make(map[string]Value, len(c.specs)),
	}
	for _, s := range c.specs {
		sel.values[s.key] = Value{}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		// Accept --opt=value as well as --opt value.
		inline := ""
		hasInline := false
		if eq := strings.IndexByte(tok, '='); eq > 0 && strings.HasPrefix(tok, "--") {
			tok, inline, hasInline = tok[:eq], tok[eq+1:], true
		}

		spec := c.specForToken(tok)
		if spec == nil {
			return nil, &ParseError{Token: tokens[i], Msg: "unrecognized option"}
		}

		if spec.kind == KindFlag {
			if hasInline {
				return nil, &ParseError{Token: tokens[i], Msg: "flag does not take a value"}
			}
			if spec.repeatable {
				sel.values[spec.key] = countValue(sel.values[spec.key].Count() + 1)
			} else {
				sel.values[spec.key] = boolValue(true)
			}
			continue
		}

		value := inline
		if !hasInline {
			if i+1 >= len(tokens) {
				return nil, &ParseError{Token: tok, Msg: "missing value"}
			}
			i++
			value = tokens[i]
		}

		if spec.kind == KindChoice && !spec.allowsChoice(value) {
			return nil, &ParseError{
				Token: tok,
				Msg:   fmt.Sprintf("invalid choice %q (expected one of %s)", value, strings.Join(spec.choices, ", ")),
			}
		}

		if spec.repeatable {
			sel.values[spec.key] = manyValue(append(sel.values[spec.key].Strings(), value))
		} else {
			sel.values[spec.key] = singleValue(value)
		}
	}

	return sel, nil
}

func (s *Spec) allowsChoice(value string) bool {
	for _, c := range s.choices {
		if c == value {
			return true
		}
	}
	return false
}

// Catalog returns the catalog this selection was parsed against.
func (sel *Selection) Catalog() *Catalog { return sel.catalog }

// Get returns the current value for key, which must exist in the catalog.
func (sel *Selection) Get(key string) (Value, error) {
	if _, ok := sel.catalog.lookup(key); !ok {
		return Value{}, &ConfigError{Msg: fmt.Sprintf("no such option %q", key)}
	}
	return sel.values[key], nil
}

// Active reports whether key currently carries a value that would render.
// Unknown keys are simply inactive.
func (sel *Selection) Active(key string) bool {
	return sel.values[key].Active()
}

// SetFlag forces a flag option on or off.
func (sel *Selection) SetFlag(key string, on bool) error {
	spec, ok := sel.catalog.lookup(key)
	if !ok {
		return &ConfigError{Msg: fmt.Sprintf("no such option %q", key)}
	}
	if spec.kind != KindFlag {
		return &ConfigError{Msg: fmt.Sprintf("option %q is not a flag", key)}
	}
	sel.values[key] = boolValue(on)
	return nil
}

// Set forces a choice or valued option. A single value sets a scalar; for a
// repeatable option multiple values replace the whole list. Choice
// constraints apply to forced values as well.
func (sel *Selection) Set(key string, values ...string) error {
	spec, ok := sel.catalog.lookup(key)
	if !ok {
		return &ConfigError{Msg: fmt.Sprintf("no such option %q", key)}
	}
	if spec.kind == KindFlag {
		return &ConfigError{Msg: fmt.Sprintf("option %q is a flag; use SetFlag", key)}
	}
	if len(values) == 0 {
		return sel.Clear(key)
	}
	if !spec.repeatable && len(values) > 1 {
		return &ConfigError{Msg: fmt.Sprintf("option %q takes a single value", key)}
	}

	for _, v := range values {
		if spec.kind == KindChoice && !spec.allowsChoice(v) {
			return &ParseError{
				Token: "--" + spec.long,
				Msg:   fmt.Sprintf("invalid choice %q (expected one of %s)", v, strings.Join(spec.choices, ", ")),
			}
		}
	}

	if spec.repeatable {
		sel.values[key] = manyValue(append([]string(nil), values...))
	} else {
		sel.values[key] = singleValue(values[0])
	}
	return nil
}

// Clear resets key to absent.
func (sel *Selection) Clear(key string) error {
	if _, ok := sel.catalog.lookup(key); !ok {
		return &ConfigError{Msg: fmt.Sprintf("no such option %q", key)}
	}
	sel.values[key] = Value{}
	return nil
}

// Render produces the canonical command-line fragment for the selection,
// walking the catalog in declaration order. Flags render once when set
// (counts collapse to plain presence), choices and values render as
// "--flag value" pairs, repeated per element for repeatable options.
// Absent options are omitted. Parsing the rendered string against the same
// catalog reproduces an equivalent selection.
func (sel *Selection) Render() string {
	var parts []string
	for _, spec := range sel.catalog.specs {
		v := sel.values[spec.key]
		if !v.Active() {
			continue
		}

		if spec.kind == KindFlag {
			parts = append(parts, "--"+spec.long)
			continue
		}
		for _, s := range v.Strings() {
			parts = append(parts, "--"+spec.long, s)
		}
	}
	return strings.Join(parts, " ")
}

// SupportedIn checks every active option against the server version and
// returns the key of the first one whose version range excludes it.
// Options left absent are never checked.
func (sel *Selection) SupportedIn(server semver.Version) (string, bool) {
	for _, spec := range sel.catalog.specs {
		if spec.supported.IsEmpty() || !sel.values[spec.key].Active() {
			continue
		}
		if !spec.supported.Matches(server) {
			return spec.key, false
		}
	}
	return "", true
}
