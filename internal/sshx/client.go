// Package sshx is the SSH transport behind a gerrit.Site. It resolves the
// destination through ~/.ssh/config the way OpenSSH would (hostname, user,
// port, identity files), authenticates with an identity file or the local
// ssh-agent, and runs each command in its own session, returning captured
// stdout as lines.
package sshx

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kevinburke/ssh_config"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultPort is Gerrit's standard SSH port.
const DefaultPort = 29418

// Options selects the destination and how to trust and authenticate to it.
// Zero fields fall back to ~/.ssh/config and then to defaults.
type Options struct {
	Host string // host or ~/.ssh/config alias, required
	User string
	Port int

	IdentityFile   string
	KnownHostsFile string

	// InsecureIgnoreHostKey skips host key verification entirely.
	InsecureIgnoreHostKey bool
}

// Client is a connected SSH transport. It satisfies gerrit.Transport.
type Client struct {
	addr string
	conn *ssh.Client
}

// Dial resolves opts against ~/.ssh/config and establishes the connection.
func Dial(opts Options) (*Client, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("sshx: no host given")
	}

	host, user, port := resolveDestination(opts)
	if user == "" {
		return nil, fmt.Errorf("sshx: no user for %s (set one on the command line, in the config file, or in ~/.ssh/config)", opts.Host)
	}

	auth, err := authMethods(opts)
	if err != nil {
		return nil, err
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("sshx: no usable identity file or ssh-agent for %s", opts.Host)
	}

	hostKeys, err := hostKeyCallback(opts)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: hostKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("sshx: connecting to %s: %w", addr, err)
	}

	return &Client{addr: addr, conn: conn}, nil
}

// resolveDestination applies explicit options over ~/.ssh/config entries
// over defaults.
func resolveDestination(opts Options) (host, user string, port int) {
	host = ssh_config.Get(opts.Host, "HostName")
	if host == "" {
		host = opts.Host
	}

	user = opts.User
	if user == "" {
		user = ssh_config.Get(opts.Host, "User")
	}
	if user == "" {
		user = os.Getenv("USER")
	}

	port = opts.Port
	if port == 0 {
		if p, err := strconv.Atoi(ssh_config.Get(opts.Host, "Port")); err == nil && p != 0 && p != 22 {
			// ssh_config reports 22 when no entry exists; Gerrit
			// never listens there.
			port = p
		}
	}
	if port == 0 {
		port = DefaultPort
	}

	return host, user, port
}

func authMethods(opts Options) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	identity := opts.IdentityFile
	if identity == "" {
		identity = ssh_config.Get(opts.Host, "IdentityFile")
	}
	if identity != "" {
		if signer, err := loadIdentity(identity); err == nil {
			methods = append(methods, ssh.PublicKeys(signer))
		} else if opts.IdentityFile != "" {
			// An identity the caller named explicitly must load.
			return nil, fmt.Errorf("sshx: identity %s: %w", identity, err)
		}
	}

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	return methods, nil
}

func loadIdentity(path string) (ssh.Signer, error) {
	key, err := os.ReadFile(expandHome(path))
	if err != nil {
		return nil, err
	}
	return ssh.ParsePrivateKey(key)
}

func hostKeyCallback(opts Options) (ssh.HostKeyCallback, error) {
	if opts.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := opts.KnownHostsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("sshx: locating known_hosts: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	cb, err := knownhosts.New(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("sshx: reading known_hosts %s: %w", path, err)
	}
	return cb, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Execute runs one command in a fresh session and returns its stdout as
// lines stripped of trailing newlines. A command that exits non-zero
// returns the session error, with stderr folded into the message.
func (c *Client) Execute(cmd string) ([]string, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return nil, fmt.Errorf("sshx: opening session: %w", err)
	}
	defer session.Close()

	var stdout, stderr strings.Builder
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(cmd); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("sshx: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("sshx: running %q: %w", cmd, err)
	}

	return splitLines(stdout.String()), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// Addr is the resolved host:port the client dialed.
func (c *Client) Addr() string { return c.addr }

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
