package nlp

import (
	"sort"
)

// Lexicon is the set of known-correct words derived from intent keywords.
// Words are kept sorted so nearest-neighbour ties resolve the same way on every run.
type Lexicon struct {
	words []string
	set   map[string]struct{}
}

// NewLexicon tokenizes every phrase and collects the distinct words.
func NewLexicon(phrases []string) *Lexicon {
	set := make(map[string]struct{})
	for _, phrase := range phrases {
		for _, tok := range Tokenize(phrase) {
			set[tok] = struct{}{}
		}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)

	return &Lexicon{words: words, set: set}
}

// Contains reports whether word is in the Lexicon.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[word]
	return ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Words returns the sorted word list.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}
