package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// bulletGlyphs are the list markers PDF exports commonly produce
var bulletGlyphs = []string{"•", "●", "▪", "◦", "·", "\uf0b7", "–"}

// CleanText normalizes extracted resume text: line endings become LF, control
// characters are dropped, bullet glyphs become "- ", runs of spaces collapse,
// and at most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}
	for _, glyph := range bulletGlyphs {
		if rest, ok := strings.CutPrefix(line, glyph); ok {
			return "- " + strings.TrimSpace(rest)
		}
	}
	if rest, ok := strings.CutPrefix(line, "* "); ok {
		return "- " + rest
	}
	return line
}
