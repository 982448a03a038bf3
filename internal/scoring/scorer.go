// Package scoring ranks intents against a user query.
package scoring

import (
	"sort"

	"github.com/rvrjc/campusbot/internal/model"
)

// Query carries the forms of a user message that strategies score against.
type Query struct {
	Raw        string // folded original message
	Corrected  string // spelling-corrected tokens joined by spaces
	Normalized string // output of the Normalizer
}

// Scored is a relevance score in [0,1] for one intent.
type Scored struct {
	Intent model.Intent
	Score  float64
}

// Scorer computes a relevance score for every intent.
// Results are ordered by descending score; equal scores keep declaration order.
type Scorer interface {
	Name() string
	Threshold() float64
	Score(q Query) []Scored
}

// Match is the accepted result of Select.
type Match struct {
	Scored
	Strategy string
}

// Best returns the top result if it strictly exceeds threshold.
func Best(results []Scored, threshold float64) (Scored, bool) {
	if len(results) == 0 {
		return Scored{}, false
	}
	if results[0].Score > threshold {
		return results[0], true
	}
	return results[0], false
}

// Select runs scorers in order and returns the first top result that clears
// its scorer's threshold. When nothing clears, the highest score seen is
// returned with ok=false.
func Select(q Query, scorers ...Scorer) (Match, bool) {
	var closest Match
	for _, s := range scorers {
		top, ok := Best(s.Score(q), s.Threshold())
		if ok {
			return Match{Scored: top, Strategy: s.Name()}, true
		}
		if top.Score > closest.Score || closest.Strategy == "" {
			closest = Match{Scored: top, Strategy: s.Name()}
		}
	}
	return closest, false
}

func rank(results []Scored) []Scored {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
