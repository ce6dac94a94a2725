package outline

import (
	"regexp"
	"strings"
)

var (
	emphasis      = regexp.MustCompile(`\*\*|__|(^|\s)[*_](\S)|(\S)[*_](\s|$)`)
	headingMarker = regexp.MustCompile(`(?m)^\s*#{1,6}\s+`)
	inlineBullet  = regexp.MustCompile(`([^\n])\s+•\s*`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
)

// NormalizeContent cleans a model-written slide body: markdown emphasis and
// heading markers are stripped, bullets glued onto the previous sentence are
// moved to their own line and runs of blank lines collapse to one.
func NormalizeContent(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = headingMarker.ReplaceAllString(s, "")
	s = emphasis.ReplaceAllString(s, "$1$2$3$4")
	s = inlineBullet.ReplaceAllString(s, "$1\n• ")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

var (
	nonWord     = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	underscores = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns a model suggestion into a bare file stem.
func SanitizeFilename(name string) string {
	s := strings.TrimSpace(name)
	s = strings.TrimSuffix(strings.TrimSuffix(s, ".pdf"), ".pptx")
	s = nonWord.ReplaceAllString(s, "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if r := []rune(s); len(r) > 60 {
		s = strings.Trim(string(r[:60]), "_")
	}
	return s
}
