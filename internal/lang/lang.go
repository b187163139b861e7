// Package lang holds the table of localization languages the game ships
// and a best-effort check that translated text is written in one of them.
package lang

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// Language describes one localization language.
type Language struct {
	// Code is the localization directory code used by the game,
	// e.g. "simp_chinese".
	Code string
	// Name is the display name used when talking to the model,
	// e.g. "Simplified Chinese".
	Name string
	// Tag is the BCP 47 tag used for detection checks.
	Tag language.Tag
}

var supported = []Language{
	{Code: "braz_por", Name: "Brazilian Portuguese", Tag: language.BrazilianPortuguese},
	{Code: "english", Name: "English", Tag: language.English},
	{Code: "french", Name: "French", Tag: language.French},
	{Code: "german", Name: "German", Tag: language.German},
	{Code: "japanese", Name: "Japanese", Tag: language.Japanese},
	{Code: "korean", Name: "Korean", Tag: language.Korean},
	{Code: "polish", Name: "Polish", Tag: language.Polish},
	{Code: "russian", Name: "Russian", Tag: language.Russian},
	{Code: "simp_chinese", Name: "Simplified Chinese", Tag: language.SimplifiedChinese},
	{Code: "spanish", Name: "Spanish", Tag: language.Spanish},
	{Code: "turkish", Name: "Turkish", Tag: language.Turkish},
}

// Supported returns the language table in stable order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Codes returns the supported localization codes in stable order.
func Codes() []string {
	codes := make([]string, len(supported))
	for i, l := range supported {
		codes[i] = l.Code
	}
	return codes
}

// Lookup resolves a localization code to its Language.
func Lookup(code string) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Parse is Lookup with an error naming the valid codes, for CLI input.
func Parse(code string) (Language, error) {
	l, ok := Lookup(code)
	if !ok {
		return Language{}, fmt.Errorf("unsupported language %q (supported: %s)",
			code, strings.Join(Codes(), ", "))
	}
	return l, nil
}

// minDetectionLength is the minimum rune count for a detection attempt.
// Shorter texts give unreliable results and are accepted as-is.
const minDetectionLength = 20

// Verify reports whether text plausibly reads as l. Short or ambiguous
// text passes; only a confident detection of a different language fails.
func Verify(text string, l Language) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minDetectionLength {
		return true
	}

	info := whatlanggo.Detect(trimmed)
	if !info.IsReliable() {
		return true
	}

	detected := info.Lang.Iso6391()
	if detected == "" {
		return true
	}

	base, confidence := l.Tag.Base()
	if confidence == language.No {
		return true
	}
	return detected == base.String()
}
