package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
)

var membersCmd = &cobra.Command{
	Use:   "members <group>",
	Short: "List the members of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		optionStr := ""
		if recursive, _ := cmd.Flags().GetBool("recursive"); recursive {
			optionStr = "--recursive"
		}

		ml, err := gerrit.NewMemberList(args[0], optionStr)
		if err != nil {
			return err
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		members, err := ml.ExecuteOn(site)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Username, m.FullName, m.Email)
		}
		return w.Flush()
	},
}

func init() {
	membersCmd.Flags().Bool("recursive", false, "include members of nested groups")
}
