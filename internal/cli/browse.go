package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
	"github.com/gersh-io/gersh/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [search terms...]",
	Short: "Browse query results interactively",
	Long: `Run a query and open its results in an interactive browser: the
review list on the left, the selected review's details and commit message
on the right.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := buildQueryExpr(cmd, args)
		if expr == "" {
			expr = "status:open"
		}

		maxResults, _ := cmd.Flags().GetInt("max-results")
		q, err := gerrit.NewQueryWithOptions(expr, maxResults, "")
		if err != nil {
			return err
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		reviews, err := q.ExecuteOn(site)
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			fmt.Println("No matching reviews.")
			return nil
		}

		return tui.Run(reviews)
	},
}

func init() {
	browseCmd.Flags().StringP("project", "p", "", "restrict to a project")
	browseCmd.Flags().StringP("branch", "b", "", "restrict to a branch")
	browseCmd.Flags().String("status", "", "restrict to a status")
	browseCmd.Flags().IntP("max-results", "n", 100, "cap the number of reviews loaded")
}
