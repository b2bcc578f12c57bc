package transform

import (
	"regexp"
	"strings"
)

// Wiki-to-Markdown substitution rules, applied once each, in order. Bold
// runs first so the single stars produced by the italic rule are not
// re-read as wiki bold within the same pass.
//
// The bold pattern accepts one or two stars on each side, so text already
// in Markdown form (**bold**) passes through unchanged. Single-star text is
// always read as wiki bold; Markdown italics therefore get promoted to bold
// when a converted text is run through again. The two dialects share the
// single star, so no rule can tell them apart.
var (
	boldPattern   = regexp.MustCompile(`\*{1,2}([^*\n]+)\*{1,2}`)
	italicPattern = regexp.MustCompile(`_([^_\n]+)_`)
	codePattern   = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	linkPattern   = regexp.MustCompile(`\[([^|\]]+)\|([^\]]+)\]`)
)

// CleanMarkup converts wiki markup to Markdown and trims surrounding
// whitespace. Empty input stays empty. Code conversion consumes its braces,
// so a second pass finds nothing to wrap and adds no extra fence.
func CleanMarkup(text string) string {
	if text == "" {
		return ""
	}
	text = boldPattern.ReplaceAllString(text, "**$1**")
	text = italicPattern.ReplaceAllString(text, "*$1*")
	text = codePattern.ReplaceAllString(text, "```\n$1\n```")
	text = linkPattern.ReplaceAllString(text, "[$1]($2)")
	return strings.TrimSpace(text)
}
