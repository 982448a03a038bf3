// Package nlp provides the text preprocessing pipeline used for intent matching:
// tokenization, spelling correction against a Lexicon, stopword removal and stemming.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases text, folds accents and splits it into words.
// Any rune that is not a letter or digit is a boundary.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(Fold(text), isBoundary)
}

// Fold lowercases text and strips combining marks ("Café" -> "cafe").
func Fold(text string) string {
	lower := strings.ToLower(text)
	// transform.Chain keeps internal state and cannot be shared between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
