// Package cli implements the gersh command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gersh-io/gersh/internal/config"
	"github.com/gersh-io/gersh/internal/gerrit"
	"github.com/gersh-io/gersh/internal/sshx"
)

var rootCmd = &cobra.Command{
	Use:   "gersh",
	Short: "Drive a Gerrit code review server over SSH",
	Long: `gersh talks to a Gerrit instance through its SSH command interface:
querying reviews, listing projects, groups and group members, and banning
commits. Commands and options are checked against the server's reported
version before anything is sent.

The site can come from --site, from ~/.config/gersh/config.toml, or be an
alias defined in ~/.ssh/config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("site", "s", "", "gerrit host or ~/.ssh/config alias")
	pf.String("user", "", "SSH user (default from ~/.ssh/config)")
	pf.Int("port", 0, "SSH port (default 29418)")
	pf.StringP("identity", "i", "", "private key file")
	pf.String("config", "", "config file (default ~/.config/gersh/config.toml)")
	pf.Bool("insecure-host-key", false, "skip host key verification")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(banCommitCmd)
	rootCmd.AddCommand(browseCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gersh: %v\n", err)
		return err
	}
	return nil
}

// loadConfig merges the config file under the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if site, _ := cmd.Flags().GetString("site"); site != "" {
		cfg.Site = site
	}
	if user, _ := cmd.Flags().GetString("user"); user != "" {
		cfg.User = user
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if identity, _ := cmd.Flags().GetString("identity"); identity != "" {
		cfg.IdentityFile = identity
	}
	if insecure, _ := cmd.Flags().GetBool("insecure-host-key"); insecure {
		cfg.InsecureHostKey = true
	}

	if cfg.Site == "" {
		return nil, fmt.Errorf("no site given (use --site or set one in the config file)")
	}

	return cfg, nil
}

// connectSite dials the configured site and probes its version. The
// returned func closes the connection.
func connectSite(cmd *cobra.Command) (*gerrit.Site, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	client, err := sshx.Dial(sshx.Options{
		Host:                  cfg.Site,
		User:                  cfg.User,
		Port:                  cfg.Port,
		IdentityFile:          cfg.IdentityFile,
		KnownHostsFile:        cfg.KnownHostsFile,
		InsecureIgnoreHostKey: cfg.InsecureHostKey,
	})
	if err != nil {
		return nil, nil, err
	}

	site := gerrit.NewSite(client)
	if err := site.Connect(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to %s: %w", cfg.Site, err)
	}

	return site, func() { client.Close() }, nil
}
