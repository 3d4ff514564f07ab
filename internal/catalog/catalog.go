package catalog

import (
	"foodsearch/internal/domain"
)

// Message identifies a user-facing status text
type Message int

const (
	MessageError Message = iota
	MessageIntro
	MessageNoResult
	MessageSearching
	MessageTooShort
)

var keys = map[Message]string{
	MessageError:     "error",
	MessageIntro:     "intro",
	MessageNoResult:  "noResult",
	MessageSearching: "searching",
	MessageTooShort:  "tooShort",
}

var defaults = map[Message]string{
	MessageError:     "Something went wrong, try again!",
	MessageIntro:     "Search For Your Fav Food Here...",
	MessageNoResult:  "No results found for your search query",
	MessageSearching: "Searching...",
	MessageTooShort:  "Search query must be 3 characters long",
}

// Other display strings used alongside the status messages
const (
	SelectedTitle = "You have selected"
	Placeholder   = "Search here e.g. chicken"
)

// Key returns the lookup key of m
func (m Message) Key() string {
	return keys[m]
}

func (m Message) String() string {
	return m.Key()
}

// ParseKey maps a lookup key back to its message
func ParseKey(key string) (Message, bool) {
	for m, k := range keys {
		if k == key {
			return m, true
		}
	}
	return 0, false
}

// Catalog resolves messages to display text
type Catalog struct {
	texts map[Message]string
}

// New builds a catalog from the default texts. Overrides are keyed by
// message key; unknown keys and empty texts are ignored.
func New(overrides map[string]string) *Catalog {
	c := &Catalog{texts: make(map[Message]string, len(defaults))}
	for m, text := range defaults {
		c.texts[m] = text
	}
	for key, text := range overrides {
		if m, ok := ParseKey(key); ok && text != "" {
			c.texts[m] = text
		}
	}
	return c
}

// Text returns the display text for m
func (c *Catalog) Text(m Message) string {
	return c.texts[m]
}

// Lookup returns the display text for a message key
func (c *Catalog) Lookup(key string) (string, bool) {
	m, ok := ParseKey(key)
	if !ok {
		return "", false
	}
	return c.Text(m), true
}

// ForState picks the status message for a view state. Done states with
// items have no status message.
func ForState(s domain.ViewState) (Message, bool) {
	switch s.Phase {
	case domain.PhaseNotStarted:
		return MessageIntro, true
	case domain.PhaseLoading:
		return MessageSearching, true
	case domain.PhaseEmpty:
		return MessageNoResult, true
	case domain.PhaseFailed:
		return MessageError, true
	default:
		return 0, false
	}
}
