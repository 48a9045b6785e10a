package llmtext

import (
	"regexp"
	"strings"
)

var (
	reasoningEndRe   = regexp.MustCompile(`(?i)</think>`)
	codeFenceStartRe = regexp.MustCompile("^\\s*```[a-zA-Z0-9_-]*\\s*")
	codeFenceEndRe   = regexp.MustCompile("\\s*```\\s*$")
	fluffRe          = regexp.MustCompile(`(?i)^\s*(Here is|Below is|Sure[,:\-]?|Certainly[,:\-]?|Here's the)\b[^\n]*\n+`)
)

// StripReasoning drops everything up to and including the last </think> marker.
func StripReasoning(text string) string {
	loc := reasoningEndRe.FindAllStringIndex(text, -1)
	if len(loc) == 0 {
		return text
	}

	return text[loc[len(loc)-1][1]:]
}

// Normalize prepares raw model output for JSON extraction: reasoning blocks,
// one leading and one trailing code fence and surrounding whitespace are removed.
func Normalize(text string) string {
	text = StripReasoning(text)
	text = codeFenceStartRe.ReplaceAllString(text, "")
	text = codeFenceEndRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// StripFluff removes a leading "Here is your draft"-style line.
func StripFluff(text string) string {
	return strings.TrimSpace(fluffRe.ReplaceAllString(text, ""))
}
