// Package prompt builds the instruction text sent to the completion
// service for each translation batch.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdxmods/modloc/internal/batch"
	"github.com/pdxmods/modloc/internal/glossary"
)

// Prompt is one translation request: a fixed system instruction and the
// batch JSON as the user message.
type Prompt struct {
	System string
	User   string
}

const instructions = `You are a professional game localizer working on a mod for a Paradox grand strategy game. The user sends you a JSON object mapping localization keys to English interface text. Translate every value from English to %s.

Rules:
- Substrings such as $variable$, [scripted.Expression], #formatting and @icon! are game markup. Copy each of them into the translation exactly as written. Never translate, reorder, or drop them.
- Do not translate the JSON keys.
- Keep the tone appropriate for the game's historical setting.
- Reply with ONLY a valid JSON object holding exactly the same keys, values translated. No explanations, no markdown fences.

Example input:
{"greeting_ruler": "Greetings, $RULER$ of [COUNTRY.GetName]!"}

Example output for Simplified Chinese:
{"greeting_ruler": "您好，[COUNTRY.GetName]的$RULER$！"}`

// Build assembles the request for one batch. terms, when non-empty, adds a
// terminology section pinning glossary translations; iteration order is
// sorted so the same batch always yields the same prompt.
func Build(b batch.Batch, targetName string, terms glossary.TermMap) Prompt {
	system := fmt.Sprintf(instructions, targetName)

	if len(terms) > 0 {
		sources := make([]string, 0, len(terms))
		for source := range terms {
			sources = append(sources, source)
		}
		sort.Strings(sources)

		var sb strings.Builder
		sb.WriteString(system)
		sb.WriteString("\n\nUse this established terminology:\n")
		for _, source := range sources {
			fmt.Fprintf(&sb, "- %q -> %q\n", source, terms[source])
		}
		system = sb.String()
	}

	return Prompt{System: system, User: b.JSON()}
}
