package match

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Accept  All ", "accept all"},
		{"Run\t\nNow", "run now"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeLabel_StripsKeyboardHints(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Run Alt+Enter", "run"},
		{"Run (Ctrl+R)", "run"},
		{"Run (ctrl+shift+r)", "run"},
		{"RunAlt+Enter", "run"},
		{"Accept all", "accept all"},
		{"Accept All Shift+A", "accept all"},
		{"Save Cmd+S", "save"},
		{"Plain button", "plain button"},
	}
	for _, tt := range tests {
		if got := NormalizeLabel(tt.in); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsExactMatch(t *testing.T) {
	if !IsExactMatch("Run (Ctrl+R)", "run") {
		t.Error("hint-stripped label should match")
	}
	if !IsExactMatch("  ACCEPT   ALL ", "accept all") {
		t.Error("normalization should make these equal")
	}
	if IsExactMatch("Always run", "run") {
		t.Error("superstring must not match")
	}
	if IsExactMatch("run", "accept all") {
		t.Error("different text must not match")
	}
}

func TestCompileTargets_DiscardsEmpty(t *testing.T) {
	targets, err := CompileTargets([]string{"Accept All", "  ", "", "Run"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].Text != "accept all" || targets[1].Text != "run" {
		t.Errorf("unexpected targets: %+v", targets)
	}
}

func TestCompileTargets_RegexAlignment(t *testing.T) {
	targets, err := CompileTargets([]string{"accept all", "run"}, []string{"", `^run( all)?$`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if targets[0].Pattern != nil {
		t.Error("blank regex entry should leave exact matching")
	}
	if targets[1].Pattern == nil {
		t.Fatal("second target should carry a pattern")
	}
	if !targets[1].Matches("Run All") {
		t.Error("regex should match case-insensitively")
	}
	if targets[1].Matches("rerun") {
		t.Error("anchored regex should reject rerun")
	}
}

func TestCompileTargets_RegexOverridesExact(t *testing.T) {
	targets, err := CompileTargets([]string{"run"}, []string{"run"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unanchored pattern: the regex rule matches superstrings that the
	// exact rule would reject. Precedence belongs to the pattern.
	if !targets[0].Matches("Always run") {
		t.Error("pattern search should take precedence over exact matching")
	}
}

func TestCompileTargets_InvalidPattern(t *testing.T) {
	_, err := CompileTargets([]string{"accept all", "run"}, []string{"", "("})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "target_regexes[1]") || !strings.Contains(err.Error(), "(") {
		t.Errorf("error should name index and pattern: %v", err)
	}
}

func TestTargetMode(t *testing.T) {
	targets, _ := CompileTargets([]string{"accept all", "run"}, []string{"", "^run$"})
	if targets[0].Mode() != "exact" {
		t.Errorf("got %q", targets[0].Mode())
	}
	if !strings.HasPrefix(targets[1].Mode(), "regex:") {
		t.Errorf("got %q", targets[1].Mode())
	}
}

func TestTokens(t *testing.T) {
	targets, _ := CompileTargets([]string{"accept all", "run all"}, nil)
	toks := Tokens(targets)
	want := map[string]bool{"accept": true, "all": true, "run": true}
	if len(toks) != len(want) {
		t.Fatalf("got %v", toks)
	}
	for _, tok := range toks {
		if !want[tok] {
			t.Errorf("unexpected token %q", tok)
		}
	}
}
