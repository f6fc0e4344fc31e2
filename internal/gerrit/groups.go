package gerrit

import (
	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

var groupListRange = semver.MustParseRange(">=2.4")

var groupListOptions = cmdopt.MustCatalog(
	cmdopt.Valued("project", "p"),
	cmdopt.Valued("user", "u"),
	cmdopt.Flag("visible-to-all", ""),
	cmdopt.Choice("type", "", "internal", "system"),
	cmdopt.Flag("verbose", "v").SupportedIn(">=2.5"),
	cmdopt.Flag("owned", "").SupportedIn(">=2.6"),
	cmdopt.Valued("q", "q").Repeatable().SupportedIn(">=2.6"),
)

// GroupList wraps the ls-groups command.
type GroupList struct {
	opts *cmdopt.Selection
}

// NewGroupList parses the caller's option string against the ls-groups
// catalog.
func NewGroupList(optionStr string) (*GroupList, error) {
	sel, err := groupListOptions.Parse(optionStr)
	if err != nil {
		return nil, err
	}
	return &GroupList{opts: sel}, nil
}

// Options exposes the parsed selection.
func (g *GroupList) Options() *cmdopt.Selection { return g.opts }

// ExecuteOn lists the visible groups, one per returned line (more columns
// under --verbose).
func (g *GroupList) ExecuteOn(site *Site) ([]string, error) {
	if err := CheckSupport("ls-groups", groupListRange, g.opts, site.Version()); err != nil {
		return nil, err
	}

	raw, err := site.Execute(joinTerms("ls-groups", g.opts.Render()))
	if err != nil {
		return nil, err
	}
	return nonEmpty(raw), nil
}
