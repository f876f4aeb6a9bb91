package textutil

import (
	"regexp"
	"strings"
)

// markdownPatterns is the battery used to reject formatted model output:
// headers, emphasis in both syntaxes, images, links, inline and fenced code,
// unordered and ordered lists, blockquotes, horizontal rules, strikethrough.
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`),
	regexp.MustCompile(`\*\*(.*?)\*\*`),
	regexp.MustCompile(`\*(.*?)\*`),
	regexp.MustCompile(`__(.*?)__`),
	regexp.MustCompile(`_(.*?)_`),
	regexp.MustCompile(`!\[.*?\]\(.*?\)`),
	regexp.MustCompile(`\[.*?\]\(.*?\)`),
	regexp.MustCompile("`{1,3}[^`]+`{1,3}"),
	regexp.MustCompile(`(?m)^\s{0,3}[-*+] `),
	regexp.MustCompile(`(?m)^\s*\d+\.\s+`),
	regexp.MustCompile(`(?m)^\s*>\s+`),
	regexp.MustCompile(`(?m)^\s{0,3}(-{3,}|\*{3,})\s*$`),
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile(`~~(.*?)~~`),
}

// ContainsMarkdown reports whether text carries markdown-style formatting.
func ContainsMarkdown(text string) bool {
	for _, pattern := range markdownPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// StripTrailingHashtagLine drops the last line of text when it is a hashtag
// line, so tags are not repeated in the published description. Trailing
// newlines are not lines; they never shadow the real last line.
func StripTrailingHashtagLine(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > 0 && strings.Contains(lines[len(lines)-1], "#") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
