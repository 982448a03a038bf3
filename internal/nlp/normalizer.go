package nlp

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Normalizer turns free text into the canonical form used for scoring:
// tokens, stopword removal, stemming, optional spelling correction.
type Normalizer struct {
	corrector *Corrector
	stopwords map[string]struct{}
	preserved map[string]struct{}
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCorrector enables spelling correction of stemmed tokens.
func WithCorrector(c *Corrector) Option {
	return func(n *Normalizer) {
		n.corrector = c
	}
}

// WithPreserved replaces the default preserved-word list.
func WithPreserved(words []string) Option {
	return func(n *Normalizer) {
		n.preserved = wordSet(words)
	}
}

// NewNormalizer creates a Normalizer using the default stopword and preserved lists.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		stopwords: wordSet(Stopwords),
		preserved: wordSet(PreservedWords),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the normalized form of text. Empty input yields "".
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens runs the pipeline and returns the surviving stemmed tokens.
func (n *Normalizer) Tokens(text string) []string {
	raw := Tokenize(text)
	if len(raw) == 0 {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if n.isStopword(tok) {
			continue
		}
		stem := Stem(tok)
		// a stem can collapse onto a stopword ("having" -> "have")
		if n.isStopword(stem) {
			continue
		}
		// Survivors are known stems or stems that already failed
		// correction, so Normalize is idempotent.
		if n.corrector != nil {
			if stem = n.corrector.CorrectStem(stem); n.isStopword(stem) {
				continue
			}
		}
		out = append(out, stem)
	}
	return out
}

func (n *Normalizer) isStopword(tok string) bool {
	if _, ok := n.preserved[tok]; ok {
		return false
	}
	_, ok := n.stopwords[tok]
	return ok
}

// Stem applies the English Porter2 stemmer until the token stops changing.
func Stem(word string) string {
	for i := 0; i <= len(word); i++ {
		next := english.Stem(word, false)
		if next == word {
			break
		}
		word = next
	}
	return word
}
