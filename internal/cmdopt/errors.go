package cmdopt

import "fmt"

// ConfigError reports a malformed catalog or command definition: duplicate
// option keys, bad flag names, unparsable version ranges, missing required
// arguments. These are programming errors and surface at construction time.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports an option string that does not conform to its catalog:
// an unknown flag, a missing value, or a choice outside the allowed set.
// Token identifies the offending input.
type ParseError struct {
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("option %q: %s", e.Token, e.Msg)
	}
	return e.Msg
}
