package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveControlChars drops control characters other than line breaks and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// CollapseWhitespace turns every run of whitespace, line breaks included,
// into one space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// CollapseSpaces is CollapseWhitespace that keeps single line breaks, for
// multi-line text such as a toast description.
func CollapseSpaces(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = CollapseWhitespace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Truncate returns a transform that cuts s to at most n runes, ending in
// Ellipsis when it cuts. n <= 0 disables the limit.
func Truncate(n int) Transform[string] {
	return func(s string) string {
		if n <= 0 {
			return s
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		if n == 1 {
			return Ellipsis
		}
		return strings.TrimRightFunc(string(runes[:n-1]), unicode.IsSpace) + Ellipsis
	}
}

// Line cleans single-line text such as a title or a button label.
func Line(maxRunes int) Transform[string] {
	return Compose(RemoveControlChars, CollapseWhitespace, Truncate(maxRunes))
}

// Paragraph cleans multi-line text, keeping its line breaks.
func Paragraph(maxRunes int) Transform[string] {
	return Compose(RemoveControlChars, CollapseSpaces, Truncate(maxRunes))
}
