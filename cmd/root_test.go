package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"run", "supervise", "mcp", "status", "history"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestFormatTargets(t *testing.T) {
	cases := []struct {
		targets []string
		want    string
	}{
		{nil, ""},
		{[]string{"run"}, `"run"`},
		{[]string{"accept all", "run"}, `"accept all" or "run"`},
		{[]string{"a", "b", "c"}, `"a", "b" or "c"`},
	}
	for _, tc := range cases {
		if got := formatTargets(tc.targets); got != tc.want {
			t.Errorf("formatTargets(%v) = %q, want %q", tc.targets, got, tc.want)
		}
	}
}
