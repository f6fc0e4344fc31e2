package gerrit

import (
	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

var projectListRange = semver.MustParseRange(">=2.4")

var projectListOptions = cmdopt.MustCatalog(
	cmdopt.Valued("show-branch", "b").Repeatable(),
	cmdopt.Flag("description", "d").SupportedIn(">=2.5"),
	cmdopt.Flag("tree", "t"),
	cmdopt.Choice("type", "", "code", "permissions", "all"),
	cmdopt.Flag("all", "").SupportedIn(">=2.5"),
	cmdopt.Valued("limit", "").SupportedIn(">=2.5"),
	cmdopt.Valued("has-acl-for", "").SupportedIn(">=2.6"),
	cmdopt.Choice("format", "", "text", "json", "json_compact").SupportedIn(">=2.5"),
)

// ProjectList wraps the ls-projects command.
type ProjectList struct {
	opts *cmdopt.Selection
}

// NewProjectList parses the caller's option string against the ls-projects
// catalog.
func NewProjectList(optionStr string) (*ProjectList, error) {
	sel, err := projectListOptions.Parse(optionStr)
	if err != nil {
		return nil, err
	}
	return &ProjectList{opts: sel}, nil
}

// Options exposes the parsed selection so callers can force values before
// execution.
func (p *ProjectList) Options() *cmdopt.Selection { return p.opts }

// ExecuteOn lists the visible projects, one name per returned line.
func (p *ProjectList) ExecuteOn(site *Site) ([]string, error) {
	if err := CheckSupport("ls-projects", projectListRange, p.opts, site.Version()); err != nil {
		return nil, err
	}

	raw, err := site.Execute(joinTerms("ls-projects", p.opts.Render()))
	if err != nil {
		return nil, err
	}
	return nonEmpty(raw), nil
}
