// Package segment splits document text into sentences.
package segment

import (
	"regexp"
	"strings"
)

// boundary is a sentence-terminal mark followed by the whitespace run to split on.
// \s alone is ASCII-only, so vertical tab, NEL and the Unicode separators
// (no-break space, U+2028 and friends) are listed explicitly.
var boundary = regexp.MustCompile(`[.!?][\s\v\p{Z}\x{85}]+`)

// Sentences splits text on whitespace that immediately follows '.', '!' or '?'.
// The punctuation stays with the sentence it ends. Abbreviations, decimals and
// quoted punctuation are not special-cased. Blank input yields no sentences.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	prev := 0
	for _, m := range boundary.FindAllStringIndex(text, -1) {
		// m[0] is the punctuation byte; keep it, drop the whitespace.
		out = append(out, text[prev:m[0]+1])
		prev = m[1]
	}
	return append(out, text[prev:])
}
