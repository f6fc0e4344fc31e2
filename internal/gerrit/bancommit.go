package gerrit

import (
	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

var banCommitRange = semver.MustParseRange(">=2.5")

var banCommitOptions = cmdopt.MustCatalog(
	cmdopt.Valued("reason", "").SupportedIn(">=2.5"),
)

// BanCommit wraps the ban-commit command, which marks a commit as banned
// in a project. The command produces no output on success.
type BanCommit struct {
	project string
	commit  string
	opts    *cmdopt.Selection
}

// NewBanCommit validates the required positional arguments and parses the
// option string. Missing project or commit fails at construction with a
// ConfigError, never at execution time.
func NewBanCommit(project, commit, optionStr string) (*BanCommit, error) {
	if project == "" || commit == "" {
		return nil, &cmdopt.ConfigError{Msg: "ban-commit requires both a project and a commit"}
	}
	sel, err := banCommitOptions.Parse(optionStr)
	if err != nil {
		return nil, err
	}
	return &BanCommit{project: project, commit: commit, opts: sel}, nil
}

// Options exposes the parsed selection.
func (b *BanCommit) Options() *cmdopt.Selection { return b.opts }

// ExecuteOn bans the commit.
func (b *BanCommit) ExecuteOn(site *Site) error {
	if err := CheckSupport("ban-commit", banCommitRange, b.opts, site.Version()); err != nil {
		return err
	}

	_, err := site.Execute(joinTerms("ban-commit", b.opts.Render(), b.project, b.commit))
	return err
}
