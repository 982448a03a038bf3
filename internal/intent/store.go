// Package intent holds the immutable set of intents the assistant can answer.
package intent

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rvrjc/campusbot/internal/model"
)

// Store maps intent names to intents and remembers declaration order.
// It is never mutated after construction.
type Store struct {
	intents []model.Intent
	byName  map[string]int
}

// NewStore validates intents and builds a Store in the given order.
func NewStore(intents []model.Intent) (*Store, error) {
	if len(intents) == 0 {
		return nil, ErrEmpty
	}

	s := &Store{
		intents: make([]model.Intent, 0, len(intents)),
		byName:  make(map[string]int, len(intents)),
	}
	for _, it := range intents {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			return nil, ErrNoName
		}
		if _, dup := s.byName[it.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, it.Name)
		}
		if strings.TrimSpace(it.Response) == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoResponse, it.Name)
		}
		for _, l := range it.Links {
			if strings.TrimSpace(l.URL) == "" {
				return nil, fmt.Errorf("%w: %s", ErrBadLink, it.Name)
			}
		}
		it.Keywords = cleanKeywords(it.Keywords)
		it.Links = model.CopyLinks(it.Links)

		s.byName[it.Name] = len(s.intents)
		s.intents = append(s.intents, it)
	}
	return s, nil
}

// LoadFile reads and parses an intents file (JSON or YAML).
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	s, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Op: "parse", Err: err}
	}
	return s, nil
}

// Parse decodes a top-level mapping of intent name to intent body.
// Mapping order is the declaration order used for tie-breaking.
func Parse(data []byte) (*Store, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Op: "parse", Err: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &LoadError{Op: "parse", Err: ErrEmpty}
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &LoadError{Op: "parse", Err: fmt.Errorf("line %d: expected a mapping of intents", doc.Line)}
	}

	intents := make([]model.Intent, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, body := doc.Content[i], doc.Content[i+1]

		var it model.Intent
		if err := body.Decode(&it); err != nil {
			return nil, &LoadError{Op: "parse", Err: fmt.Errorf("intent %q: %w", key.Value, err)}
		}
		it.Name = key.Value
		intents = append(intents, it)
	}

	s, err := NewStore(intents)
	if err != nil {
		return nil, &LoadError{Op: "validate", Err: err}
	}
	return s, nil
}

// Get returns the intent with the given name.
func (s *Store) Get(name string) (model.Intent, bool) {
	i, ok := s.byName[name]
	if !ok {
		return model.Intent{}, false
	}
	return s.intents[i], true
}

// Has reports whether an intent exists.
func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// All returns the intents in declaration order.
func (s *Store) All() []model.Intent {
	out := make([]model.Intent, len(s.intents))
	copy(out, s.intents)
	return out
}

// Names returns intent names in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.intents))
	for i, it := range s.intents {
		names[i] = it.Name
	}
	return names
}

// Len returns the number of intents.
func (s *Store) Len() int {
	return len(s.intents)
}

// Keywords returns every keyword phrase of every intent.
func (s *Store) Keywords() []string {
	var out []string
	for _, it := range s.intents {
		out = append(out, it.Keywords...)
	}
	return out
}

// Unreachable returns the names of intents that have no keywords.
func (s *Store) Unreachable() []string {
	var out []string
	for _, it := range s.intents {
		if len(it.Keywords) == 0 {
			out = append(out, it.Name)
		}
	}
	return out
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
