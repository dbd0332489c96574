package ctl

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// promptPattern matches the prompt character of the control tool, for example
// "[bluetooth]# ", at the very end of the received text.
var promptPattern = regexp.MustCompile(`[#>]\s*$`)

// sanitize strips ANSI escape codes and control characters from the tool's output.
// CRLF sequences are normalized to LF. The tool redraws its prompt with a lone CR
// followed by a line clear, so only the text after the last CR of a line is kept.
func sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' || r > 0x1F {
			b.WriteRune(r)
		}
	}
	s = b.String()

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.ContainsRune(line, '\r') {
			lines[i] = lastSegment(line)
		}
	}

	return strings.Join(lines, "\n")
}

// lastSegment returns the last non-empty text after a CR within a line.
func lastSegment(line string) string {
	segments := strings.Split(line, "\r")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}

	return ""
}

// cutPrompt returns the text before a trailing prompt, and whether a prompt was found.
func cutPrompt(s string) (string, bool) {
	loc := promptPattern.FindStringIndex(s)
	if loc == nil {
		return "", false
	}

	return s[:loc[0]], true
}
