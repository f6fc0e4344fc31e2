package sshx

import "testing"

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one\n", []string{"one"}},
		{"one\ntwo\n", []string{"one", "two"}},
		{"one\r\ntwo\r\n", []string{"one", "two"}},
		{"no trailing newline", []string{"no trailing newline"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}

	for _, c := range cases {
		got := splitLines(c.in)
		if len(got) != len(c.want) {
			t.Errorf("splitLines(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("splitLines(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestResolveDestinationDefaults(t *testing.T) {
	host, _, port := resolveDestination(Options{Host: "review.example.com", User: "ann"})
	if host != "review.example.com" {
		t.Errorf("host = %q", host)
	}
	if port != DefaultPort {
		t.Errorf("port = %d, want %d", port, DefaultPort)
	}
}

func TestResolveDestinationExplicitWins(t *testing.T) {
	_, user, port := resolveDestination(Options{Host: "review.example.com", User: "bob", Port: 2222})
	if user != "bob" {
		t.Errorf("user = %q", user)
	}
	if port != 2222 {
		t.Errorf("port = %d", port)
	}
}

func TestDialRequiresHost(t *testing.T) {
	if _, err := Dial(Options{}); err == nil {
		t.Error("Dial with empty host should fail")
	}
}
