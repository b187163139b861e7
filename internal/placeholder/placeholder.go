// Package placeholder extracts and verifies the in-text markup tokens the
// game engine substitutes at runtime: $variable$, [scripted expressions],
// #formatting directives and @icon! references. Translated text must carry
// every token of its source text verbatim or the game renders it broken.
package placeholder

import (
	"regexp"
	"strings"
)

var pattern = regexp.MustCompile(
	`\$[^$\n]+\$` + // $variable$
		`|\[[^\[\]\n]*\]` + // [scripted expression]
		`|#[A-Za-z0-9_]+` + // #formatting
		`|@[^@!\s]+!`, // @icon!
)

// Extract returns every placeholder token in text, in order of appearance,
// duplicates included.
func Extract(text string) []string {
	return pattern.FindAllString(text, -1)
}

// Verify checks that translated carries every placeholder token of source,
// with at least the same number of occurrences. It returns the tokens that
// are missing or underrepresented; an empty result means the translation
// preserved the markup.
func Verify(source, translated string) []string {
	var missing []string
	seen := make(map[string]bool)

	for _, token := range Extract(source) {
		if seen[token] {
			continue
		}
		seen[token] = true

		want := strings.Count(source, token)
		if strings.Count(translated, token) < want {
			missing = append(missing, token)
		}
	}
	return missing
}
