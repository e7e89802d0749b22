package shortcuts

import (
	"fyne.io/fyne/v2/data/binding"

	"keycap/internal/capture"
)

// Definition describes one configurable action
type Definition struct {
	ID       string // Stable identifier, used as the validation map key
	Label    string // Text shown next to the capture button
	Required bool   // Whether an empty key is a validation error
	Default  string // Initial key assignment, may be empty
}

// Item pairs a definition with its live key assignment. The binding is the
// single source of truth for the assigned key; capture buttons and the
// try-out lookup both go through it.
type Item struct {
	Definition
	Value binding.String
}

// Key returns the currently assigned key, empty when unassigned
func (it *Item) Key() string {
	key, err := it.Value.Get()
	if err != nil {
		return ""
	}
	return key
}

// Set owns the action items in display order
type Set struct {
	items []*Item
}

// NewSet creates a set with one bound string per definition, initialized to
// the definition's default key
func NewSet(defs []Definition) *Set {
	s := &Set{items: make([]*Item, 0, len(defs))}
	for _, def := range defs {
		value := binding.NewString()
		if def.Default != "" {
			_ = value.Set(def.Default)
		}
		s.items = append(s.items, &Item{Definition: def, Value: value})
	}
	return s
}

// Items returns the action items in display order
func (s *Set) Items() []*Item {
	return s.items
}

// Validate recomputes the validation state of every item. Per-item checks
// (empty required key, more than one character) run first; any key held by
// more than one item then marks every holder as a duplicate.
func (s *Set) Validate() map[string]capture.ValidationError {
	result := make(map[string]capture.ValidationError, len(s.items))
	holders := make(map[string][]*Item)

	for _, item := range s.items {
		key := item.Key()
		result[item.ID] = capture.Check(key, item.Required)
		if key != "" {
			holders[key] = append(holders[key], item)
		}
	}

	for _, items := range holders {
		if len(items) < 2 {
			continue
		}
		for _, item := range items {
			result[item.ID] = capture.ValidationDuplicateKey
		}
	}

	return result
}

// Valid reports whether every item currently validates clean
func (s *Set) Valid() bool {
	for _, kind := range s.Validate() {
		if kind != capture.ValidationNone {
			return false
		}
	}
	return true
}

// Match returns the item whose assigned key equals the typed character
func (s *Set) Match(r rune) (*Item, bool) {
	key := string(r)
	for _, item := range s.items {
		if item.Key() == key {
			return item, true
		}
	}
	return nil, false
}
