package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	repeatedSpaces   = regexp.MustCompile(` {2,}`)
)

// CleanText normalizes raw input before it is sent to a model.
// Everything outside printable ASCII, except newline and tab, becomes a space.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKD.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || (r >= 0x20 && r <= 0x7E) {
			return r
		}
		return ' '
	}, text)

	text = excessBlankLines.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = repeatedSpaces.ReplaceAllString(line, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// TruncateText bounds text to maxChars characters. When a period falls within
// the last 20% of the window the cut is made right after it.
func TruncateText(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	if maxChars <= 0 {
		return ""
	}

	truncated := runes[:maxChars]
	lastPeriod := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		if truncated[i] == '.' {
			lastPeriod = i
			break
		}
	}
	if float64(lastPeriod) > float64(maxChars)*0.8 {
		return string(truncated[:lastPeriod+1])
	}
	return string(truncated)
}

// IsMeaningful reports whether text has at least minWords whitespace-separated words.
func IsMeaningful(text string, minWords int) bool {
	if text == "" {
		return false
	}
	return len(strings.Fields(text)) >= minWords
}

// HeadRunes returns at most n leading characters of s.
func HeadRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
