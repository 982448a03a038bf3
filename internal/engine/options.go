package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rvrjc/campusbot/internal/followup"
	"github.com/rvrjc/campusbot/internal/nlp"
	"github.com/rvrjc/campusbot/internal/scoring"
)

// Strategy selects which scorers the engine runs.
type Strategy string

const (
	StrategyKeyword Strategy = "keyword"
	StrategyTFIDF   Strategy = "tfidf"
	// StrategyHybrid runs the keyword scorer and falls back to TF-IDF.
	StrategyHybrid Strategy = "hybrid"
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyKeyword:
		return StrategyKeyword, nil
	case StrategyTFIDF:
		return StrategyTFIDF, nil
	case StrategyHybrid, "":
		return StrategyHybrid, nil
	default:
		return "", fmt.Errorf("unknown match strategy %q", s)
	}
}

const (
	DefaultClarification = "I didn't receive a message. How can I help you?"
	DefaultFallback      = "I'm not sure I understand your question. Could you rephrase it? You can ask me about:"
)

// SmallTalk maps fixed conversational phrases to an intent.
type SmallTalk struct {
	Intent  string
	Phrases []string
}

// DefaultSmallTalk returns the built-in phrase table, most specific first.
func DefaultSmallTalk() []SmallTalk {
	return []SmallTalk{
		{Intent: "how_are_you", Phrases: []string{"how are you", "how are u", "how r u", "how do you do"}},
		{Intent: "bot_name", Phrases: []string{"your name", "who are you", "what are you"}},
		{Intent: "thanks", Phrases: []string{"thank you", "thanks", "thank u", "thx"}},
		{Intent: "greetings", Phrases: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "namaste", "greetings"}},
	}
}

// Options tunes the engine. Zero values are replaced by defaults in New.
type Options struct {
	Strategy          Strategy
	KeywordThreshold  float64
	TFIDFThreshold    float64
	SpellCorrection   bool
	PreservedWords    []string
	FollowUpRules     []followup.Rule
	SmallTalk         []SmallTalk
	ClarificationText string
	FallbackText      string
	Logger            *zap.Logger
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Strategy:          StrategyHybrid,
		KeywordThreshold:  scoring.DefaultKeywordThreshold,
		TFIDFThreshold:    scoring.DefaultTFIDFThreshold,
		SpellCorrection:   true,
		PreservedWords:    nlp.PreservedWords,
		FollowUpRules:     followup.DefaultRules(),
		SmallTalk:         DefaultSmallTalk(),
		ClarificationText: DefaultClarification,
		FallbackText:      DefaultFallback,
	}
}

func (o *Options) applyDefaults() error {
	def := DefaultOptions()
	strategy, err := ParseStrategy(string(o.Strategy))
	if err != nil {
		return err
	}
	o.Strategy = strategy
	if o.KeywordThreshold < 0 || o.KeywordThreshold >= 1 {
		return fmt.Errorf("keyword threshold %v out of range [0,1)", o.KeywordThreshold)
	}
	if o.TFIDFThreshold < 0 || o.TFIDFThreshold >= 1 {
		return fmt.Errorf("tfidf threshold %v out of range [0,1)", o.TFIDFThreshold)
	}
	if o.PreservedWords == nil {
		o.PreservedWords = def.PreservedWords
	}
	if o.FollowUpRules == nil {
		o.FollowUpRules = def.FollowUpRules
	}
	if o.SmallTalk == nil {
		o.SmallTalk = def.SmallTalk
	}
	if o.ClarificationText == "" {
		o.ClarificationText = def.ClarificationText
	}
	if o.FallbackText == "" {
		o.FallbackText = def.FallbackText
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}
