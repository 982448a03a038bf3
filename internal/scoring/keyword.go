package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/nlp"
)

const (
	// ExactMatchScore is returned when a keyword phrase appears verbatim.
	ExactMatchScore = 1.0
	// PartialMatchWeight is added for every keyword sub-word found in the message.
	PartialMatchWeight = 0.5
	// PartialMatchCap bounds the score of partial matches below an exact match.
	PartialMatchCap = 0.9
	// MinPartialWordLength is the shortest keyword sub-word counted as a partial match.
	MinPartialWordLength = 4

	// DefaultKeywordThreshold is the acceptance threshold for KeywordScorer.
	DefaultKeywordThreshold = 0.4
)

// KeywordScorer scores intents by substring overlap with their keywords.
type KeywordScorer struct {
	store     *intent.Store
	keywords  [][]string
	threshold float64
}

// NewKeywordScorer creates a keyword-overlap scorer over store.
func NewKeywordScorer(store *intent.Store, threshold float64) *KeywordScorer {
	all := store.All()
	keywords := make([][]string, len(all))
	for i, it := range all {
		keywords[i] = make([]string, len(it.Keywords))
		for j, kw := range it.Keywords {
			keywords[i][j] = nlp.Fold(kw)
		}
	}
	return &KeywordScorer{
		store:     store,
		keywords:  keywords,
		threshold: threshold,
	}
}

// Name returns the strategy name.
func (k *KeywordScorer) Name() string { return "keyword" }

// Threshold returns the acceptance threshold.
func (k *KeywordScorer) Threshold() float64 { return k.threshold }

// Score scores both the raw and the corrected message and keeps the better one.
func (k *KeywordScorer) Score(q Query) []Scored {
	raw := nlp.Fold(q.Raw)
	results := make([]Scored, 0, len(k.keywords))
	for i, it := range k.store.All() {
		score := max(KeywordScore(raw, k.keywords[i]), KeywordScore(q.Corrected, k.keywords[i]))
		results = append(results, Scored{Intent: it, Score: score})
	}
	return rank(results)
}

// KeywordScore scores a lowercased message against lowercased keyword phrases.
func KeywordScore(message string, keywords []string) float64 {
	if message == "" {
		return 0
	}
	for _, kw := range keywords {
		if kw != "" && strings.Contains(message, kw) {
			return ExactMatchScore
		}
	}

	score := 0.0
	for _, kw := range keywords {
		for _, word := range strings.Fields(kw) {
			if utf8.RuneCountInString(word) >= MinPartialWordLength && strings.Contains(message, word) {
				score += PartialMatchWeight
			}
		}
	}
	return min(score, PartialMatchCap)
}
