// Package gerrit drives the command-line surface a Gerrit server exposes
// over SSH and turns its line- and JSON-oriented output into structured
// objects. Commands declare their options and version requirements up
// front, are validated against the connected server's reported version
// before anything goes over the wire, and render themselves to the exact
// command strings Gerrit expects.
package gerrit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gersh-io/gersh/internal/semver"
)

// Transport executes one command line against the remote server and
// returns its captured standard output as lines stripped of trailing
// newlines. Implementations are expected to already be connected.
type Transport interface {
	Execute(cmd string) ([]string, error)
}

var versionRe = regexp.MustCompile(`gerrit version (\d+)\.(\d+)\.(\d+)`)

// Site is a connected Gerrit instance: a transport plus the server version
// probed from it. All commands execute through a Site.
type Site struct {
	transport Transport
	version   Version
	connected bool
}

// Version aliases the semver value type so callers of this package rarely
// need to import internal/semver directly.
type Version = semver.Version

// NewSite wraps an already-dialed transport. Call Connect before executing
// commands.
func NewSite(t Transport) *Site {
	return &Site{transport: t}
}

// Connect probes the server with "gerrit version" and records the reported
// version. It is the first command of every session.
func (s *Site) Connect() error {
	lines, err := s.Execute("version")
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return &DecodeError{Err: fmt.Errorf("empty response to version probe")}
	}

	v, err := parseVersionBanner(lines[0])
	if err != nil {
		return err
	}

	s.version = v
	s.connected = true
	return nil
}

func parseVersionBanner(banner string) (Version, error) {
	m := versionRe.FindStringSubmatch(banner)
	if m == nil {
		return Version{}, &DecodeError{Line: banner, Err: fmt.Errorf("no version banner")}
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// Connected reports whether the version probe has succeeded.
func (s *Site) Connected() bool { return s.connected }

// Version is the server version reported at Connect time. Zero before
// connecting.
func (s *Site) Version() Version { return s.version }

// Execute runs one Gerrit command ("query ...", "ls-projects ...") and
// returns its output lines. Transport failures come back as a
// *TransportError.
func (s *Site) Execute(cmd string) ([]string, error) {
	full := "gerrit " + strings.TrimSpace(cmd)
	lines, err := s.transport.Execute(full)
	if err != nil {
		return nil, &TransportError{Cmd: full, Err: err}
	}
	return lines, nil
}

// nonEmpty strips whitespace from each line and drops the empty ones.
func nonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// joinTerms space-joins the non-empty terms of a command line.
func joinTerms(terms ...string) string {
	out := terms[:0:0]
	for _, t := range terms {
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, " ")
}
