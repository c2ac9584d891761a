// Package pantry manages the user's ingredient set: an ordered list of unique
// cleaned product names. State operations are pure; Service persists them.
package pantry

import (
	"errors"
	"fmt"

	"github.com/korjavin/fridgechef/pkg/ingredient"
)

// MinSearchProducts is how many products a user needs before searching
const MinSearchProducts = 2

// ErrIndexOutOfRange is returned when removing a position that does not exist
var ErrIndexOutOfRange = errors.New("index out of range")

// State is the user's ingredient set in insertion order
type State struct {
	Products []string
}

// NewState builds a state from stored products, dropping blanks and duplicates
func NewState(products []string) State {
	var s State
	for _, p := range products {
		s, _ = s.Add(p)
	}
	return s
}

// Len returns the number of products
func (s State) Len() int {
	return len(s.Products)
}

// Has reports whether the cleaned product is already in the set
func (s State) Has(product string) bool {
	for _, p := range s.Products {
		if p == product {
			return true
		}
	}
	return false
}

// CanSearch reports whether the set is big enough to run a search
func (s State) CanSearch() bool {
	return len(s.Products) >= MinSearchProducts
}

// Add cleans raw and appends it. It reports false when the cleaned value is
// empty or already present; that is not an error.
func (s State) Add(raw string) (State, bool) {
	clean := ingredient.Clean(raw)
	if clean == "" || s.Has(clean) {
		return s, false
	}
	return State{Products: append(s.clone(), clean)}, true
}

// Remove deletes the product at pos
func (s State) Remove(pos int) (State, error) {
	if pos < 0 || pos >= len(s.Products) {
		return s, fmt.Errorf("%w: position %d, have %d products", ErrIndexOutOfRange, pos, len(s.Products))
	}
	out := make([]string, 0, len(s.Products)-1)
	out = append(out, s.Products[:pos]...)
	out = append(out, s.Products[pos+1:]...)
	return State{Products: out}, nil
}

// AddBulk splits text on commas, semicolons and newlines and appends every
// new token in order. It returns the tokens that were actually added.
func (s State) AddBulk(text string) (State, []string) {
	var added []string
	for _, token := range ingredient.SplitBulk(text) {
		var ok bool
		if s, ok = s.Add(token); ok {
			added = append(added, token)
		}
	}
	return s, added
}

func (s State) clone() []string {
	out := make([]string, len(s.Products), len(s.Products)+1)
	copy(out, s.Products)
	return out
}
