package intent

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when the source defines no intents.
	ErrEmpty = errors.New("no intents defined")
	// ErrNoName is returned for an intent with a blank name.
	ErrNoName = errors.New("intent name is empty")
	// ErrNoResponse is returned for an intent with a blank response.
	ErrNoResponse = errors.New("intent has no response")
	// ErrDuplicate is returned when two intents share a name.
	ErrDuplicate = errors.New("duplicate intent name")
	// ErrBadLink is returned for a link without a URL.
	ErrBadLink = errors.New("link has no url")
)

// LoadError describes a failure to load an intents source.
type LoadError struct {
	Path string
	Op   string // "open", "parse", "validate"
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("intents %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("intents %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
