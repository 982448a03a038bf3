package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/internal/nlp"
)

func newStore(t *testing.T, intents ...model.Intent) *intent.Store {
	t.Helper()
	s, err := intent.NewStore(intents)
	require.NoError(t, err)
	return s
}

func names(results []Scored) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Intent.Name
	}
	return out
}

type fakeScorer struct {
	name      string
	threshold float64
	results   []Scored
}

func (f *fakeScorer) Name() string           { return f.name }
func (f *fakeScorer) Threshold() float64     { return f.threshold }
func (f *fakeScorer) Score(_ Query) []Scored { return f.results }

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		keywords []string
		want     float64
	}{
		{"exact phrase", "tell me about placements", []string{"placements"}, 1},
		{"exact multiword", "what is the fee structure here", []string{"fees", "fee structure"}, 1},
		{"one partial word", "what about campus life", []string{"campus recruitment"}, 0.5},
		{"partials capped", "campus drive recruitment training", []string{"training campus", "recruitment drive"}, PartialMatchCap},
		{"short sub-words ignored", "fee b", []string{"b tech fee"}, 0},
		{"no overlap", "xyzzy nonsense query", []string{"hostel", "mess food"}, 0},
		{"empty message", "", []string{"hostel"}, 0},
		{"no keywords", "hostel", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, KeywordScore(tt.message, tt.keywords), 1e-9)
		})
	}
}

func TestKeywordScorer_RanksAndBreaksTiesByDeclarationOrder(t *testing.T) {
	library := model.Intent{Name: "library", Keywords: []string{"library"}, Response: "lib"}
	timings := model.Intent{Name: "timings", Keywords: []string{"library timings"}, Response: "time"}
	hostel := model.Intent{Name: "hostel", Keywords: []string{"hostel"}, Response: "h"}

	k := NewKeywordScorer(newStore(t, hostel, library, timings), DefaultKeywordThreshold)
	got := k.Score(Query{Raw: "Library Timings?"})
	assert.Equal(t, []string{"library", "timings", "hostel"}, names(got))
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, 1.0, got[1].Score)
	assert.Equal(t, 0.0, got[2].Score)

	k = NewKeywordScorer(newStore(t, timings, library, hostel), DefaultKeywordThreshold)
	got = k.Score(Query{Raw: "library timings"})
	assert.Equal(t, []string{"timings", "library", "hostel"}, names(got))
}

func TestKeywordScorer_UsesCorrectedText(t *testing.T) {
	k := NewKeywordScorer(newStore(t, model.Intent{Name: "hostel", Keywords: []string{"hostel"}, Response: "h"}), DefaultKeywordThreshold)

	got := k.Score(Query{Raw: "hostl", Corrected: "hostel"})
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestKeywordScorer_ExactKeywordAlwaysClearsThreshold(t *testing.T) {
	store := newStore(t,
		model.Intent{Name: "greetings", Keywords: []string{"hello", "good morning"}, Response: "hi"},
		model.Intent{Name: "fees", Keywords: []string{"fees", "fee structure", "B.Tech tuition"}, Response: "f"},
		model.Intent{Name: "contact", Keywords: []string{"phone number", "Café address"}, Response: "c"},
	)
	k := NewKeywordScorer(store, DefaultKeywordThreshold)

	for _, it := range store.All() {
		for _, kw := range it.Keywords {
			var found bool
			for _, r := range k.Score(Query{Raw: kw, Corrected: kw}) {
				if r.Intent.Name == it.Name {
					found = true
					assert.Greater(t, r.Score, k.Threshold(), "keyword %q of %s", kw, it.Name)
				}
			}
			assert.True(t, found)
		}
	}
}

func tfidfFixture(t *testing.T) (*TFIDFScorer, *nlp.Normalizer) {
	t.Helper()
	n := nlp.NewNormalizer()
	store := newStore(t,
		model.Intent{Name: "hostel", Keywords: []string{"hostel rooms", "mess food"}, Response: "h"},
		model.Intent{Name: "transport", Keywords: []string{"bus routes", "transport"}, Response: "t"},
		model.Intent{Name: "library", Keywords: []string{"library books", "reading room"}, Response: "l"},
	)
	return NewTFIDFScorer(store, n, DefaultTFIDFThreshold), n
}

func TestTFIDFScorer_RanksRelevantIntentFirst(t *testing.T) {
	s, n := tfidfFixture(t)
	assert.Greater(t, s.Vocabulary(), 0)

	got := s.Score(Query{Normalized: n.Normalize("which bus routes are there")})
	require.Len(t, got, 3)
	assert.Equal(t, "transport", got[0].Intent.Name)
	assert.Greater(t, got[0].Score, s.Threshold())
	for _, r := range got[1:] {
		assert.Equal(t, 0.0, r.Score)
	}
}

func TestTFIDFScorer_IdenticalDocumentScoresOne(t *testing.T) {
	s, n := tfidfFixture(t)

	got := s.Score(Query{Normalized: n.Normalize("hostel rooms mess food")})
	assert.Equal(t, "hostel", got[0].Intent.Name)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
}

func TestTFIDFScorer_ScoresAreBounded(t *testing.T) {
	s, n := tfidfFixture(t)

	for _, q := range []string{"room", "reading room hostel rooms", "bus bus bus", "library", ""} {
		for _, r := range s.Score(Query{Normalized: n.Normalize(q)}) {
			assert.GreaterOrEqual(t, r.Score, 0.0)
			assert.LessOrEqual(t, r.Score, 1.0)
		}
	}
}

func TestTFIDFScorer_UnknownTermsScoreZero(t *testing.T) {
	s, n := tfidfFixture(t)

	got := s.Score(Query{Normalized: n.Normalize("xyzzy nonsense query")})
	_, ok := Best(got, s.Threshold())
	assert.False(t, ok)
	assert.Equal(t, []string{"hostel", "transport", "library"}, names(got))
}

func TestTFIDFScorer_ExcludedIntentsScoreZero(t *testing.T) {
	n := nlp.NewNormalizer(nlp.WithPreserved([]string{"how", "are", "you"}))
	store := newStore(t,
		model.Intent{Name: "how_are_you", Keywords: []string{"how are you"}, Response: "fine"},
		model.Intent{Name: "hostel", Keywords: []string{"hostel", "hostel facilities"}, Response: "h"},
		model.Intent{Name: "library", Keywords: []string{"library books"}, Response: "l"},
	)
	s := NewTFIDFScorer(store, n, DefaultTFIDFThreshold, "how_are_you")

	got := s.Score(Query{Normalized: n.Normalize("are hostels available")})
	best, ok := Best(got, s.Threshold())
	require.True(t, ok)
	assert.Equal(t, "hostel", best.Intent.Name)
	for _, r := range got {
		if r.Intent.Name == "how_are_you" {
			assert.Equal(t, 0.0, r.Score)
		}
	}

	exact := s.Score(Query{Normalized: n.Normalize("how are you")})
	_, ok = Best(exact, s.Threshold())
	assert.False(t, ok)
}

func TestBest_ThresholdIsStrict(t *testing.T) {
	results := []Scored{{Intent: model.Intent{Name: "a"}, Score: 0.5}}

	_, ok := Best(results, 0.5)
	assert.False(t, ok, "score equal to threshold must not match")

	_, ok = Best(results, 0.5-1e-9)
	assert.True(t, ok)

	_, ok = Best(results, 0.5+1e-9)
	assert.False(t, ok)

	_, ok = Best(nil, 0)
	assert.False(t, ok)
}

func TestSelect(t *testing.T) {
	a := Scored{Intent: model.Intent{Name: "a"}, Score: 0.35}
	b := Scored{Intent: model.Intent{Name: "b"}, Score: 0.6}

	first := &fakeScorer{name: "keyword", threshold: 0.4, results: []Scored{a}}
	second := &fakeScorer{name: "tfidf", threshold: 0.3, results: []Scored{b}}

	m, ok := Select(Query{}, first, second)
	require.True(t, ok)
	assert.Equal(t, "tfidf", m.Strategy)
	assert.Equal(t, "b", m.Intent.Name)

	m, ok = Select(Query{}, first)
	assert.False(t, ok)
	assert.Equal(t, "keyword", m.Strategy)
	assert.InDelta(t, 0.35, m.Score, 1e-9)

	_, ok = Select(Query{})
	assert.False(t, ok)
}

func TestRank_IsStable(t *testing.T) {
	in := []Scored{
		{Intent: model.Intent{Name: "a"}, Score: 0.5},
		{Intent: model.Intent{Name: "b"}, Score: 0.9},
		{Intent: model.Intent{Name: "c"}, Score: 0.5},
		{Intent: model.Intent{Name: "d"}, Score: 0.9},
	}
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, names(rank(in))); diff != "" {
		t.Errorf("rank() mismatch (-want +got):\n%s", diff)
	}
}
