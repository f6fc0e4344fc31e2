package gerrit

import (
	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

// CheckSupport decides whether a command, and every option the caller
// exercised in its selection, is honored by the given server version. The
// command's own range is checked first; then each active, version-gated
// option. Options left unset are never checked, even when their own range
// excludes the server. Commands call this after forcing any options they
// need, so forced values face the same check.
func CheckSupport(command string, required semver.Range, sel *cmdopt.Selection, server semver.Version) error {
	if !required.Matches(server) {
		return &UnsupportedError{
			Scope:    ScopeCommand,
			Command:  command,
			Server:   server,
			Required: required,
		}
	}

	if sel == nil {
		return nil
	}

	if key, ok := sel.SupportedIn(server); !ok {
		spec, _ := sel.Catalog().Spec(key)
		return &UnsupportedError{
			Scope:    ScopeOption,
			Command:  command,
			Key:      key,
			Server:   server,
			Required: spec.Supported(),
		}
	}

	return nil
}
