package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/gerrit"
)

var banCommitCmd = &cobra.Command{
	Use:   "ban-commit <project> <commit>",
	Short: "Ban a commit from a project",
	Long: `Mark a commit as banned in a project so Gerrit rejects pushes
containing it.

Example:
  gersh -s review.example.com ban-commit tools/gersh deadbeef --reason "leaked key"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		optionStr := ""
		if reason, _ := cmd.Flags().GetString("reason"); reason != "" {
			optionStr = fmt.Sprintf("--reason %q", reason)
		}

		bc, err := gerrit.NewBanCommit(args[0], args[1], optionStr)
		if err != nil {
			return err
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		if err := bc.ExecuteOn(site); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Banned %s from %s\n", args[1], args[0])
		return nil
	},
}

func init() {
	banCommitCmd.Flags().String("reason", "", "reason recorded with the ban")
}
