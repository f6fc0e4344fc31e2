// Package config loads the optional gersh configuration file, which holds
// the defaults the command line would otherwise have to repeat: the site to
// talk to, the user, and how to verify its host key.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration. Every field is optional; command
// line flags override whatever is set here.
type Config struct {
	// Site is the default Gerrit host or ~/.ssh/config alias.
	Site string `toml:"site"`

	// User overrides the SSH user for the site.
	User string `toml:"user"`

	// Port overrides the SSH port (Gerrit's default is 29418).
	Port int `toml:"port"`

	// IdentityFile is a private key to authenticate with.
	IdentityFile string `toml:"identity_file"`

	// KnownHostsFile overrides ~/.ssh/known_hosts.
	KnownHostsFile string `toml:"known_hosts_file"`

	// InsecureHostKey disables host key verification.
	InsecureHostKey bool `toml:"insecure_host_key"`
}

// DefaultPath returns ~/.config/gersh/config.toml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "gersh", "config.toml"), nil
}

// Load reads the file at path. A missing file is not an error and yields
// an empty config; a malformed file is.
func Load(path string) (*Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("reading %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("reading %s: port %d out of range", path, cfg.Port)
	}

	return &cfg, nil
}
