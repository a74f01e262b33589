package gemini

import (
	"regexp"
	"strings"
)

// Oracle output sometimes carries meta commentary ("Note: this is a
// machine translation...") that must never reach the channel.
var (
	parenDisclaimerRe   = regexp.MustCompile(`(?is)\((?:note|disclaimer)\b[^)]*\)`)
	bracketDisclaimerRe = regexp.MustCompile(`(?is)\[(?:note|disclaimer)\b[^\]]*\]`)
	lineDisclaimerRe    = regexp.MustCompile(`(?i)^(?:note|disclaimer)\s*:`)
)

// SanitizeOracleText strips model disclaimers and normalizes spacing
// in generated text.
func SanitizeOracleText(text string) string {
	text = parenDisclaimerRe.ReplaceAllString(text, "")
	text = bracketDisclaimerRe.ReplaceAllString(text, "")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if lineDisclaimerRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	text = strings.Join(kept, "\n")

	// Collapse runs of blank lines left behind by removals
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
