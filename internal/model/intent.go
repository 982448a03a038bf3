// Package model defines data structures for the campus assistant.
package model

// Link is a reference attached to a bot response.
type Link struct {
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

// Intent is a labeled category of user request.
type Intent struct {
	Name      string   `json:"name" yaml:"-"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	Response  string   `json:"response" yaml:"response"`
	Sentiment string   `json:"sentiment,omitempty" yaml:"sentiment"`
	Links     []Link   `json:"links" yaml:"links"`
}

// DisplayName returns the intent name in a human readable form.
func (i Intent) DisplayName() string {
	b := []byte(i.Name)
	for j, c := range b {
		if c == '_' || c == '-' {
			b[j] = ' '
		}
	}
	return string(b)
}

// CopyLinks returns a non-nil copy of links.
func CopyLinks(links []Link) []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
