// Package match normalizes control text and decides whether a control
// label satisfies a configured target phrase.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Keyboard-hint suffixes appended to labels by some UI toolkits, in
	// the three shapes seen in the wild: "(Ctrl+R)", " Alt+Enter" and a
	// bare "ctrl+..." tail glued to the label.
	parenHintRe  = regexp.MustCompile(`(?i)\s*\((?:alt|ctrl|shift|cmd|win)\+[^)]*\)\s*$`)
	spacedHintRe = regexp.MustCompile(`(?i)\s+(?:alt|ctrl|shift|cmd|win)\+.*$`)
	bareHintRe   = regexp.MustCompile(`(?i)(?:alt|ctrl|shift|cmd|win)\+.*$`)
)

// Normalize trims, lowercases and collapses internal whitespace runs to
// single spaces.
func Normalize(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// NormalizeLabel applies Normalize and strips a trailing keyboard-hint
// suffix, so "Run Alt+Enter" and "Run (Ctrl+R)" both compare as "run".
func NormalizeLabel(s string) string {
	name := Normalize(s)
	name = parenHintRe.ReplaceAllString(name, "")
	name = spacedHintRe.ReplaceAllString(name, "")
	name = bareHintRe.ReplaceAllString(name, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
}

// IsExactMatch reports whether the control's stripped label equals the
// normalized target. Strict equality avoids false positives like
// "Always run" for target "run".
func IsExactMatch(controlText, target string) bool {
	return NormalizeLabel(controlText) == Normalize(target)
}

// Target is one configured activation phrase. Text is already normalized.
// Pattern, when non-nil, overrides exact matching for this target: it is
// searched against the normalized control text (not the stripped label).
type Target struct {
	Text    string
	Pattern *regexp.Regexp
}

// Matches applies the match rule for this target to raw control text.
func (t Target) Matches(controlText string) bool {
	if t.Pattern != nil {
		return t.Pattern.MatchString(Normalize(controlText))
	}
	return IsExactMatch(controlText, t.Text)
}

// Mode describes how this target matches, for diagnostics.
func (t Target) Mode() string {
	if t.Pattern != nil {
		return "regex:" + t.Pattern.String()
	}
	return "exact"
}

// CompileTargets normalizes the configured target phrases, discards the
// ones that are empty after normalization, and pairs each surviving
// target with its optional regex override by position. Compilation is
// fail-fast: an invalid pattern aborts startup naming the offending index
// and pattern.
func CompileTargets(texts []string, regexes []string) ([]Target, error) {
	var targets []Target
	for _, raw := range texts {
		text := Normalize(raw)
		if text == "" {
			continue
		}
		targets = append(targets, Target{Text: text})
	}

	for i := range targets {
		if i >= len(regexes) {
			break
		}
		pattern := strings.TrimSpace(regexes[i])
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid uia.target_regexes[%d] regex %q: %w", i, pattern, err)
		}
		targets[i].Pattern = re
	}
	return targets, nil
}

// Tokens returns the distinct whitespace-delimited tokens across all
// targets, used by the diagnostic tracer to decide which candidates are
// worth printing.
func Tokens(targets []Target) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, t := range targets {
		for _, tok := range strings.Fields(t.Text) {
			if !seen[tok] {
				seen[tok] = true
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}
