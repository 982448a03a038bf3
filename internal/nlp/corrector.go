package nlp

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MinCorrectableLength is the shortest token the Corrector will touch.
// Shorter tokens produce too many false positives at small edit distances.
const MinCorrectableLength = 4

// MaxDistance returns the largest edit distance accepted for a token of n runes.
func MaxDistance(n int) int {
	return max(2, n/3)
}

// Corrector replaces unknown tokens with their nearest Lexicon word.
type Corrector struct {
	lexicon *Lexicon
	known   map[string]struct{}
	// stems of Lexicon words, sorted, without stopwords
	stems []string
}

// NewCorrector creates a corrector over lex. Stopwords, preserved words and
// stems of Lexicon words are treated as known and never corrected.
func NewCorrector(lex *Lexicon) *Corrector {
	known := wordSet(Stopwords, PreservedWords)
	stopwords := wordSet(Stopwords)
	seen := make(map[string]struct{})
	var stems []string
	for _, w := range lex.Words() {
		known[w] = struct{}{}
		s := Stem(w)
		known[s] = struct{}{}
		if _, stop := stopwords[s]; stop {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			stems = append(stems, s)
		}
	}
	sort.Strings(stems)
	return &Corrector{lexicon: lex, known: known, stems: stems}
}

// Enabled reports whether there is anything to correct against.
func (c *Corrector) Enabled() bool {
	return c != nil && c.lexicon.Len() > 0
}

// Correct tokenizes text and corrects each token, joining the result with single spaces.
func (c *Corrector) Correct(text string) string {
	tokens := Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = c.CorrectToken(tok)
	}
	return strings.Join(tokens, " ")
}

// CorrectToken returns the closest Lexicon word for tok, or tok itself when it is
// short, already known, or no candidate is within MaxDistance.
func (c *Corrector) CorrectToken(tok string) string {
	n := utf8.RuneCountInString(tok)
	if n < MinCorrectableLength || !c.Enabled() {
		return tok
	}
	if _, ok := c.known[tok]; ok {
		return tok
	}
	return nearest(tok, n, c.lexicon.words)
}

// CorrectStem corrects an already stemmed token against the stems of Lexicon
// words. Every replacement it returns is itself known, so correcting its output
// again changes nothing.
func (c *Corrector) CorrectStem(stem string) string {
	n := utf8.RuneCountInString(stem)
	if n < MinCorrectableLength || !c.Enabled() {
		return stem
	}
	if _, ok := c.known[stem]; ok {
		return stem
	}
	return nearest(stem, n, c.stems)
}

// nearest returns the first candidate at the smallest edit distance from tok,
// or tok when none is within MaxDistance(n).
func nearest(tok string, n int, candidates []string) string {
	best := ""
	bestDist := -1
	for _, w := range candidates {
		d := levenshtein.ComputeDistance(tok, w)
		if bestDist < 0 || d < bestDist {
			best, bestDist = w, d
		}
	}

	if bestDist >= 0 && bestDist <= MaxDistance(n) {
		return best
	}
	return tok
}
