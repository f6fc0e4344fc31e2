package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the gersh version. With --remote, also connect to the site and
report the Gerrit version it is running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("gersh %s (commit %s, built %s)\n", version, commit, date)

		remote, _ := cmd.Flags().GetBool("remote")
		if !remote {
			return nil
		}

		site, closeSite, err := connectSite(cmd)
		if err != nil {
			return err
		}
		defer closeSite()

		fmt.Printf("remote is running gerrit %s\n", site.Version())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("remote", false, "also report the server's gerrit version")
}
