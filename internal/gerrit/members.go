package gerrit

import (
	"strings"

	"github.com/gersh-io/gersh/internal/cmdopt"
	"github.com/gersh-io/gersh/internal/semver"
)

var memberListRange = semver.MustParseRange(">=2.8")

var memberListOptions = cmdopt.MustCatalog(
	cmdopt.Flag("recursive", "").SupportedIn(">=2.8"),
)

// Member is one row of ls-members output.
type Member struct {
	ID       string
	Username string
	FullName string
	Email    string
}

// MemberList wraps the ls-members command for a single group.
type MemberList struct {
	group string
	opts  *cmdopt.Selection
}

// NewMemberList parses the option string and validates that a group name
// was supplied; an empty group fails immediately with a ConfigError.
func NewMemberList(group, optionStr string) (*MemberList, error) {
	if group == "" {
		return nil, &cmdopt.ConfigError{Msg: "ls-members requires a group name"}
	}
	sel, err := memberListOptions.Parse(optionStr)
	if err != nil {
		return nil, err
	}
	return &MemberList{group: group, opts: sel}, nil
}

// Options exposes the parsed selection.
func (m *MemberList) Options() *cmdopt.Selection { return m.opts }

// ExecuteOn fetches the group's members. The response is a tab-separated
// table headed by "id\tusername\tfullname\temail"; anything else is the
// server reporting a bad group.
func (m *MemberList) ExecuteOn(site *Site) ([]Member, error) {
	if err := CheckSupport("ls-members", memberListRange, m.opts, site.Version()); err != nil {
		return nil, err
	}

	raw, err := site.Execute(joinTerms("ls-members", m.opts.Render(), m.group))
	if err != nil {
		return nil, err
	}

	raw = nonEmpty(raw)
	if len(raw) == 0 {
		return nil, &InvalidGroupError{Group: m.group, Msg: "no response from ls-members"}
	}
	if !strings.HasPrefix(raw[0], "id\t") {
		return nil, &InvalidGroupError{Group: m.group, Msg: raw[0]}
	}

	members := make([]Member, 0, len(raw)-1)
	for _, line := range raw[1:] {
		fields := strings.Split(line, "\t")
		var mem Member
		for i, f := range fields {
			switch i {
			case 0:
				mem.ID = f
			case 1:
				mem.Username = f
			case 2:
				mem.FullName = f
			case 3:
				mem.Email = f
			}
		}
		members = append(members, mem)
	}
	return members, nil
}
