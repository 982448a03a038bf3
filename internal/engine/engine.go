// Package engine answers user messages by combining small talk, follow-up
// resolution and intent scoring. An Engine is immutable after New and safe for
// concurrent use; it never mutates the history it is given.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/followup"
	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/internal/nlp"
	"github.com/rvrjc/campusbot/internal/scoring"
)

// Kind tells the caller which branch produced a Response.
type Kind string

const (
	KindClarification Kind = "clarification"
	KindSmallTalk     Kind = "smalltalk"
	KindFollowUp      Kind = "follow_up"
	KindMatch         Kind = "match"
	KindFallback      Kind = "fallback"
)

// Response is the single result shape of Handle.
type Response struct {
	Kind       Kind
	Text       string
	Links      []model.Link
	IsFollowUp bool
	Intent     string
	Sentiment  string
	Score      float64
	Strategy   string
	// Corrected is the spelling-corrected message when correction changed it.
	Corrected string
}

type smallTalkEntry struct {
	intent  model.Intent
	phrases []string
}

// Engine is the conversation engine.
type Engine struct {
	store      *intent.Store
	lexicon    *nlp.Lexicon
	corrector  *nlp.Corrector
	normalizer *nlp.Normalizer
	query      *nlp.Normalizer
	scorers    []scoring.Scorer
	resolver   *followup.Resolver
	smallTalk  []smallTalkEntry
	topics     []string
	opts       Options
	log        *zap.Logger
}

// New builds an engine over store. The Lexicon, TF-IDF index and follow-up
// table are compiled here once.
func New(store *intent.Store, opts Options) (*Engine, error) {
	if store == nil || store.Len() == 0 {
		return nil, errors.New("engine: intent store is empty")
	}
	if err := opts.applyDefaults(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	lexicon := nlp.NewLexicon(store.Keywords())
	normalizer := nlp.NewNormalizer(nlp.WithPreserved(opts.PreservedWords))

	resolver, err := followup.NewResolver(store, opts.FollowUpRules)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	corrector := nlp.NewCorrector(lexicon)
	query := normalizer
	if opts.SpellCorrection && corrector.Enabled() {
		query = nlp.NewNormalizer(nlp.WithPreserved(opts.PreservedWords), nlp.WithCorrector(corrector))
	}

	e := &Engine{
		store:      store,
		lexicon:    lexicon,
		corrector:  corrector,
		normalizer: normalizer,
		query:      query,
		resolver:   resolver,
		opts:       opts,
		log:        opts.Logger,
	}

	smallTalkIntents := make(map[string]struct{})
	var smallTalkNames []string
	for _, st := range opts.SmallTalk {
		it, ok := store.Get(st.Intent)
		if !ok {
			continue
		}
		entry := smallTalkEntry{intent: it}
		for _, p := range st.Phrases {
			if toks := nlp.Tokenize(p); len(toks) > 0 {
				entry.phrases = append(entry.phrases, padded(toks))
			}
		}
		e.smallTalk = append(e.smallTalk, entry)
		smallTalkIntents[it.Name] = struct{}{}
		smallTalkNames = append(smallTalkNames, it.Name)
	}

	// Small talk is answered before scoring, so it stays out of the TF-IDF corpus.
	switch opts.Strategy {
	case StrategyKeyword:
		e.scorers = []scoring.Scorer{scoring.NewKeywordScorer(store, opts.KeywordThreshold)}
	case StrategyTFIDF:
		e.scorers = []scoring.Scorer{scoring.NewTFIDFScorer(store, normalizer, opts.TFIDFThreshold, smallTalkNames...)}
	default:
		e.scorers = []scoring.Scorer{
			scoring.NewKeywordScorer(store, opts.KeywordThreshold),
			scoring.NewTFIDFScorer(store, normalizer, opts.TFIDFThreshold, smallTalkNames...),
		}
	}

	for _, it := range store.All() {
		if _, ok := smallTalkIntents[it.Name]; !ok {
			e.topics = append(e.topics, it.DisplayName())
		}
	}

	return e, nil
}

// Handle answers message given the session history. history is only read.
func (e *Engine) Handle(message string, history []model.Exchange) Response {
	if strings.TrimSpace(message) == "" {
		return Response{
			Kind:  KindClarification,
			Text:  e.opts.ClarificationText,
			Links: []model.Link{},
		}
	}

	tokens := nlp.Tokenize(message)
	plain := strings.Join(tokens, " ")
	corrected := plain
	if e.opts.SpellCorrection && e.corrector.Enabled() {
		corrected = e.corrector.Correct(message)
	}
	var changed string
	if corrected != plain {
		changed = corrected
		e.log.Debug("spelling corrected",
			zap.String("original", plain),
			zap.String("corrected", corrected),
		)
	}

	if resp, ok := e.smallTalkResponse(tokens); ok {
		resp.Corrected = changed
		return resp
	}

	if len(history) > 0 {
		if res, ok := e.resolver.Resolve(unionTokens(tokens, strings.Fields(corrected)), history); ok {
			return Response{
				Kind:       KindFollowUp,
				Text:       res.Response,
				Links:      res.Links,
				IsFollowUp: true,
				Intent:     res.Intent,
				Corrected:  changed,
			}
		}
	}

	q := scoring.Query{
		Raw:        nlp.Fold(message),
		Corrected:  corrected,
		Normalized: e.query.Normalize(corrected),
	}
	m, ok := scoring.Select(q, e.scorers...)
	if ok {
		return Response{
			Kind:      KindMatch,
			Text:      m.Intent.Response,
			Links:     model.CopyLinks(m.Intent.Links),
			Intent:    m.Intent.Name,
			Sentiment: m.Intent.Sentiment,
			Score:     m.Score,
			Strategy:  m.Strategy,
			Corrected: changed,
		}
	}

	e.log.Debug("no intent above threshold",
		zap.String("message", message),
		zap.String("closest", m.Intent.Name),
		zap.Float64("score", m.Score),
	)
	return Response{
		Kind:      KindFallback,
		Text:      e.fallbackText(),
		Links:     []model.Link{},
		Score:     m.Score,
		Corrected: changed,
	}
}

// Normalize returns the form of text the TF-IDF scorer compares, spelling
// corrected when correction is enabled. Normalize(Normalize(x)) == Normalize(x).
func (e *Engine) Normalize(text string) string {
	return e.query.Normalize(text)
}

// Topics returns the display names of the answerable topics.
func (e *Engine) Topics() []string {
	out := make([]string, len(e.topics))
	copy(out, e.topics)
	return out
}

// Store returns the intent store the engine was built from.
func (e *Engine) Store() *intent.Store {
	return e.store
}

// Lexicon returns the correction dictionary.
func (e *Engine) Lexicon() *nlp.Lexicon {
	return e.lexicon
}

func (e *Engine) smallTalkResponse(tokens []string) (Response, bool) {
	if len(tokens) == 0 {
		return Response{}, false
	}
	text := padded(tokens)
	for _, st := range e.smallTalk {
		for _, p := range st.phrases {
			if strings.Contains(text, p) {
				return Response{
					Kind:      KindSmallTalk,
					Text:      st.intent.Response,
					Links:     model.CopyLinks(st.intent.Links),
					Intent:    st.intent.Name,
					Sentiment: st.intent.Sentiment,
					Score:     scoring.ExactMatchScore,
				}, true
			}
		}
	}
	return Response{}, false
}

func (e *Engine) fallbackText() string {
	if len(e.topics) == 0 {
		return e.opts.FallbackText
	}
	return e.opts.FallbackText + " " + strings.Join(e.topics, ", ") + "."
}

// padded joins tokens with single spaces and surrounds them with spaces so
// containment checks only match whole words.
func padded(tokens []string) string {
	return " " + strings.Join(tokens, " ") + " "
}

func unionTokens(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
