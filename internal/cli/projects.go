package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List visible projects",
	Long: `List the projects visible to the connected user, one per line.

Examples:
  gersh -s review.example.com projects
  gersh -s review.example.com projects -o "--all --type code"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		optionStr, _ := cmd.Flags().GetString("options")

		pl, err := gerrit.NewProjectList(optionStr)
		if err != nil {
			return err
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		projects, err := pl.ExecuteOn(site)
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().StringP("options", "o", "", "ls-projects options, e.g. \"--all --tree\"")
}
