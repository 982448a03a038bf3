package scoring

import (
	"math"
	"strings"

	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/nlp"
)

// DefaultTFIDFThreshold is the acceptance threshold for TFIDFScorer.
const DefaultTFIDFThreshold = 0.3

// TFIDFScorer scores intents by cosine similarity in a TF-IDF space built from
// one document per intent (its normalized keyword phrases).
type TFIDFScorer struct {
	store     *intent.Store
	idf       map[string]float64
	docs      []map[string]float64
	norms     []float64
	threshold float64
}

// NewTFIDFScorer builds the vector space over store using normalizer.
// Intents named in exclude get no document and always score zero.
func NewTFIDFScorer(store *intent.Store, normalizer *nlp.Normalizer, threshold float64, exclude ...string) *TFIDFScorer {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	all := store.All()
	counts := make([]map[string]float64, len(all))
	df := make(map[string]int)
	docCount := 0

	for i, it := range all {
		if _, ok := skip[it.Name]; ok {
			continue
		}
		docCount++
		counts[i] = termCounts(normalizer.Tokens(strings.Join(it.Keywords, " ")))
		for term := range counts[i] {
			df[term]++
		}
	}

	n := float64(docCount)
	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log(n/float64(d)) + 1
	}

	docs := make([]map[string]float64, len(all))
	norms := make([]float64, len(all))
	for i, tf := range counts {
		docs[i] = make(map[string]float64, len(tf))
		for term, c := range tf {
			w := c * idf[term]
			docs[i][term] = w
			norms[i] += w * w
		}
		norms[i] = math.Sqrt(norms[i])
	}

	return &TFIDFScorer{
		store:     store,
		idf:       idf,
		docs:      docs,
		norms:     norms,
		threshold: threshold,
	}
}

// Name returns the strategy name.
func (s *TFIDFScorer) Name() string { return "tfidf" }

// Threshold returns the acceptance threshold.
func (s *TFIDFScorer) Threshold() float64 { return s.threshold }

// Vocabulary returns the number of distinct terms in the corpus.
func (s *TFIDFScorer) Vocabulary() int { return len(s.idf) }

// Score returns the cosine similarity between the normalized query and each intent.
// Query terms absent from the corpus carry no weight.
func (s *TFIDFScorer) Score(q Query) []Scored {
	query := make(map[string]float64)
	var qnorm float64
	for term, c := range termCounts(strings.Fields(q.Normalized)) {
		idf, ok := s.idf[term]
		if !ok {
			continue
		}
		w := c * idf
		query[term] = w
		qnorm += w * w
	}
	qnorm = math.Sqrt(qnorm)

	all := s.store.All()
	results := make([]Scored, len(all))
	for i, it := range all {
		results[i] = Scored{Intent: it}
		if qnorm == 0 || s.norms[i] == 0 {
			continue
		}
		var dot float64
		for term, w := range query {
			dot += w * s.docs[i][term]
		}
		results[i].Score = math.Min(1, dot/(qnorm*s.norms[i]))
	}
	return rank(results)
}

func termCounts(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
