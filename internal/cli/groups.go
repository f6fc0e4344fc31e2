package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List visible groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		optionStr, _ := cmd.Flags().GetString("options")

		gl, err := gerrit.NewGroupList(optionStr)
		if err != nil {
			return err
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		groups, err := gl.ExecuteOn(site)
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Println(g)
		}
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringP("options", "o", "", "ls-groups options, e.g. \"--verbose\"")
}
