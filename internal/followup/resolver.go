// Package followup resolves short follow-up messages against the previous bot reply.
package followup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rvrjc/campusbot/internal/intent"
	"github.com/rvrjc/campusbot/internal/model"
	"github.com/rvrjc/campusbot/internal/nlp"
)

// ErrInvalidRule is returned for a rule that cannot produce an answer.
var ErrInvalidRule = errors.New("invalid follow-up rule")

// Result is a resolved follow-up answer.
type Result struct {
	Topic    string
	Intent   string
	Response string
	Links    []model.Link
}

type compiledRule struct {
	topic    string
	triggers map[string]struct{}
	result   Result
}

// Resolver applies a fixed table of follow-up rules. It is read-only after
// construction and safe for concurrent use.
type Resolver struct {
	rules []compiledRule
}

// NewResolver compiles rules, resolving intent references against store.
func NewResolver(store *intent.Store, rules []Rule) (*Resolver, error) {
	r := &Resolver{rules: make([]compiledRule, 0, len(rules))}
	for i, rule := range rules {
		topic := nlp.Fold(strings.TrimSpace(rule.Topic))
		if topic == "" || len(rule.Triggers) == 0 {
			return nil, fmt.Errorf("%w: rule %d needs a topic and triggers", ErrInvalidRule, i)
		}

		res := Result{
			Topic:    topic,
			Response: rule.Response,
			Links:    model.CopyLinks(rule.Links),
		}
		if it, ok := store.Get(rule.Intent); ok {
			res.Intent = it.Name
			res.Response = it.Response
			res.Links = model.CopyLinks(it.Links)
		}
		if strings.TrimSpace(res.Response) == "" {
			return nil, fmt.Errorf("%w: rule %d (%s) has no response", ErrInvalidRule, i, topic)
		}

		triggers := make(map[string]struct{}, 2*len(rule.Triggers))
		for _, t := range rule.Triggers {
			t = nlp.Fold(strings.TrimSpace(t))
			triggers[t] = struct{}{}
			triggers[nlp.Stem(t)] = struct{}{}
		}

		r.rules = append(r.rules, compiledRule{topic: topic, triggers: triggers, result: res})
	}
	return r, nil
}

// Len returns the number of rules.
func (r *Resolver) Len() int {
	return len(r.rules)
}

// Resolve checks the message tokens against the most recent bot message in
// history. Rules are tried in table order; the first match wins.
func (r *Resolver) Resolve(tokens []string, history []model.Exchange) (Result, bool) {
	last, ok := LastBotMessage(history)
	if !ok || len(tokens) == 0 {
		return Result{}, false
	}
	last = nlp.Fold(last)

	for _, rule := range r.rules {
		if !strings.Contains(last, rule.topic) {
			continue
		}
		if rule.triggered(tokens) {
			res := rule.result
			res.Links = model.CopyLinks(res.Links)
			return res, true
		}
	}
	return Result{}, false
}

func (c compiledRule) triggered(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := c.triggers[tok]; ok {
			return true
		}
		if _, ok := c.triggers[nlp.Stem(tok)]; ok {
			return true
		}
	}
	return false
}

// LastBotMessage returns the most recent bot-authored message in history.
func LastBotMessage(history []model.Exchange) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender == model.SenderBot {
			return history[i].Message, true
		}
	}
	return "", false
}
