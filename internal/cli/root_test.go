package cli

import (
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	for _, want := range []string{"version", "query", "projects", "groups", "members", "ban-commit", "browse"} {
		if !names[want] {
			t.Errorf("root command missing subcommand %q", want)
		}
	}
}

func TestVersionDefaults(t *testing.T) {
	// version vars are set via ldflags; in tests they have their defaults
	if version != "dev" {
		t.Errorf("expected default version %q, got %q", "dev", version)
	}
}

func TestBuildQueryExpr(t *testing.T) {
	cmd := queryCmd
	if err := cmd.Flags().Set("project", "tools/gersh"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("status", "open"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cmd.Flags().Set("project", "")
		cmd.Flags().Set("status", "")
	})

	got := buildQueryExpr(cmd, []string{"owner:self"})
	want := "project:tools/gersh status:open owner:self"
	if got != want {
		t.Errorf("buildQueryExpr = %q, want %q", got, want)
	}
}
