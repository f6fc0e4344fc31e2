package cmdopt

import (
	"errors"
	"testing"

	"github.com/gersh-io/gersh/internal/semver"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		Flag("tree", "t"),
		Flag("verbose", "v").Repeatable(),
		Flag("all", "").SupportedIn(">=2.5"),
		Choice("type", "", "code", "permissions", "all"),
		Choice("format", "f", "text", "json").Repeatable().SupportedIn(">=2.5"),
		Valued("reason", ""),
		Valued("show-branch", "b").Repeatable(),
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func TestCatalogValidation(t *testing.T) {
	cases := []struct {
		name  string
		specs []Spec
	}{
		{"duplicate key", []Spec{Flag("tree", ""), Valued("tree", "")}},
		{"empty long name", []Spec{Flag("", "")}},
		{"long name starts with dash", []Spec{Flag("-bad", "")}},
		{"long name with space", []Spec{Flag("bad name", "")}},
		{"multi-char short", []Spec{Flag("ok", "xy")}},
		{"choice without choices", []Spec{Choice("type", "")}},
		{"malformed range", []Spec{Flag("ok", "").SupportedIn("approximately 2.5")}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewCatalog(c.specs...)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseBasics(t *testing.T) {
	c := testCatalog(t)

	sel, err := c.Parse("--tree -vv --type code --reason 'late breakage' -b master -b next")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if v, _ := sel.Get("tree"); !v.Bool() {
		t.Error("tree should be set")
	}
	if v, _ := sel.Get("verbose"); v.Count() != 2 {
		t.Errorf("verbose count = %d, want 2", v.Count())
	}
	if v, _ := sel.Get("type"); v.Str() != "code" {
		t.Errorf("type = %q", v.Str())
	}
	if v, _ := sel.Get("reason"); v.Str() != "late breakage" {
		t.Errorf("reason = %q, quoting not respected", v.Str())
	}
	if v, _ := sel.Get("show-branch"); len(v.Strings()) != 2 || v.Strings()[1] != "next" {
		t.Errorf("show-branch = %v", v.Strings())
	}

	// Unset options are present but absent-valued.
	if v, _ := sel.Get("all"); v.Kind() != Absent || v.Active() {
		t.Errorf("all should be absent, got %v", v.Kind())
	}
}

func TestParseInlineValue(t *testing.T) {
	c := testCatalog(t)
	sel, err := c.Parse("--type=permissions")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, _ := sel.Get("type"); v.Str() != "permissions" {
		t.Errorf("type = %q", v.Str())
	}
}

func TestParseErrors(t *testing.T) {
	c := testCatalog(t)

	cases := []struct {
		name string
		in   string
	}{
		{"unknown flag", "--badoption"},
		{"unknown short", "-z"},
		{"missing value", "--reason"},
		{"invalid choice", "--type everything"},
		{"flag with inline value", "--tree=yes"},
		{"unbalanced quote", "--reason 'oops"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Parse(tc.in)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q): expected ParseError, got %v", tc.in, err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	c := testCatalog(t)

	sel, err := c.Parse("--reason Why --tree -vvv -b master --type code")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Catalog order, counts collapse to one flag.
	want := "--tree --verbose --type code --reason Why --show-branch master"
	if got := sel.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	c := testCatalog(t)
	sel, err := c.Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := sel.Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	c := testCatalog(t)

	inputs := []string{
		"--tree",
		"--reason Why",
		"-b master -b next --type all",
		"--format json --format text -v",
		"--tree --all --reason because --show-branch dev",
	}

	for _, in := range inputs {
		first, err := c.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		second, err := c.Parse(first.Render())
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", first.Render(), err)
		}
		for _, spec := range c.Specs() {
			a, _ := first.Get(spec.Key())
			b, _ := second.Get(spec.Key())
			if a.Bool() != b.Bool() || a.Str() != b.Str() {
				t.Errorf("round trip of %q: key %q mismatch", in, spec.Key())
			}
			as, bs := a.Strings(), b.Strings()
			if len(as) != len(bs) {
				t.Errorf("round trip of %q: key %q list mismatch %v vs %v", in, spec.Key(), as, bs)
				continue
			}
			for i := range as {
				if as[i] != bs[i] {
					t.Errorf("round trip of %q: key %q element %d mismatch", in, spec.Key(), i)
				}
			}
		}
	}
}

func TestMutation(t *testing.T) {
	c := testCatalog(t)
	sel, _ := c.Parse("")

	if err := sel.SetFlag("tree", true); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	if err := sel.Set("reason", "forced"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := sel.Set("show-branch", "a", "b"); err != nil {
		t.Fatalf("Set repeatable: %v", err)
	}

	if got := sel.Render(); got != "--tree --reason forced --show-branch a --show-branch b" {
		t.Errorf("Render() = %q", got)
	}

	if err := sel.Clear("reason"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sel.Active("reason") {
		t.Error("reason should be inactive after Clear")
	}

	// Setting a key the catalog does not declare is an error.
	if err := sel.Set("nonesuch", "x"); err == nil {
		t.Error("Set on unknown key should fail")
	}
	if err := sel.SetFlag("nonesuch", true); err == nil {
		t.Error("SetFlag on unknown key should fail")
	}

	// Forced choice values are still constrained.
	if err := sel.Set("type", "bogus"); err == nil {
		t.Error("Set with invalid choice should fail")
	}
	// A single-valued option rejects multiple values.
	if err := sel.Set("reason", "a", "b"); err == nil {
		t.Error("Set with two values on scalar option should fail")
	}
}

func TestSupportedIn(t *testing.T) {
	c := testCatalog(t)

	sel, _ := c.Parse("--tree")
	// "all" is gated >=2.5 but unset, so an old server is fine.
	if key, ok := sel.SupportedIn(semver.New(2, 4, 0)); !ok {
		t.Errorf("unset gated option rejected: %q", key)
	}

	sel2, _ := c.Parse("--all")
	if key, ok := sel2.SupportedIn(semver.New(2, 4, 7)); ok || key != "all" {
		t.Errorf("SupportedIn = (%q, %v), want (all, false)", key, ok)
	}
	if _, ok := sel2.SupportedIn(semver.New(2, 5, 0)); !ok {
		t.Error("2.5.0 should support --all")
	}
}
