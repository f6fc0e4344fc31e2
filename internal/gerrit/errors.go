package gerrit

import (
	"fmt"

	"github.com/gersh-io/gersh/internal/semver"
)

// Scope says whether an UnsupportedError concerns the command itself or a
// single option within it.
type Scope int

const (
	ScopeCommand Scope = iota
	ScopeOption
)

func (s Scope) String() string {
	if s == ScopeOption {
		return "option"
	}
	return "command"
}

// UnsupportedError reports that the server's version falls outside the
// range required by a command or by an option the caller exercised. It is
// always raised before any command is sent to the server.
type UnsupportedError struct {
	Scope    Scope
	Command  string
	Key      string // option key, set when Scope is ScopeOption
	Server   semver.Version
	Required semver.Range
}

func (e *UnsupportedError) Error() string {
	if e.Scope == ScopeOption {
		return fmt.Sprintf("gerrit %s does not support option %q of %s (requires %s)",
			e.Server, e.Key, e.Command, e.Required)
	}
	return fmt.Sprintf("gerrit %s does not support %s (requires %s)",
		e.Server, e.Command, e.Required)
}

// TransportError wraps a failure to execute a command over the connection.
// It aborts whatever operation was in flight, including mid-pagination.
type TransportError struct {
	Cmd string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("executing %q: %v", e.Cmd, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response line that could not be interpreted: not
// JSON, or missing a field the record type requires.
type DecodeError struct {
	Line string
	Err  error
}

func (e *DecodeError) Error() string {
	line := e.Line
	if len(line) > 80 {
		line = line[:80] + "..."
	}
	return fmt.Sprintf("decoding response line %q: %v", line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidGroupError reports an ls-members response that signals a bad or
// unknown group rather than a member table.
type InvalidGroupError struct {
	Group string
	Msg   string
}

func (e *InvalidGroupError) Error() string {
	return fmt.Sprintf("group %q: %s", e.Group, e.Msg)
}
