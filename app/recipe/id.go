package recipe

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// \p{Z} covers non-breaking and other Unicode spaces that \s misses.
	invalidIDChars = regexp.MustCompile(`[^a-z0-9\s\p{Z}-]`)
	whitespaceRun  = regexp.MustCompile(`[\s\p{Z}]+`)
	hyphenRun      = regexp.MustCompile(`-+`)
)

// GenerateID derives the store key from a title: "Crème Brûlée (Easy!)" -> "creme-brulee-easy".
func GenerateID(title string) string {
	// The chain is stateful, so it is built per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	id, _, err := transform.String(stripMarks, title)
	if err != nil {
		id = title
	}

	id = strings.ToLower(id)
	id = invalidIDChars.ReplaceAllString(id, "")
	id = whitespaceRun.ReplaceAllString(id, "-")
	id = hyphenRun.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")

	if id == "" {
		return "untitled"
	}
	return id
}
