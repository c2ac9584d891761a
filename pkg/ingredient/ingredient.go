// Package ingredient holds the string rules used to compare ingredient names.
//
// Two normalizations coexist and must not be merged: Normalize strips a
// parenthetical qualifier and is used for the catalog vocabulary, while Clean
// only trims and lowercases and is used for anything the user types. Merging
// them would change which products a user can add and therefore search results.
package ingredient

import (
	"strings"
)

// Normalize converts a raw catalog ingredient to its canonical name:
// the text before the first "(", trimmed and lowercased.
// "Garlic (clove)" becomes "garlic". An empty result means no ingredient.
func Normalize(raw string) string {
	if idx := strings.Index(raw, "("); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Clean trims and lowercases user input without touching parentheses
func Clean(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches reports whether a recipe ingredient is covered by a user product.
// Containment is checked both ways so "egg" covers "eggs" and vice versa.
// Short products can produce false positives; that is accepted.
func Matches(ingredient, product string) bool {
	if product == "" {
		return false
	}
	ing := strings.ToLower(ingredient)
	return strings.Contains(ing, product) || strings.Contains(product, ing)
}

// MatchesAny reports whether any of the products covers the ingredient
func MatchesAny(ingredient string, products []string) bool {
	for _, p := range products {
		if Matches(ingredient, p) {
			return true
		}
	}
	return false
}

// SplitBulk splits free text on commas, semicolons and newlines and cleans
// each token. Empty tokens are dropped; order is kept; duplicates are kept.
func SplitBulk(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if clean := Clean(f); clean != "" {
			tokens = append(tokens, clean)
		}
	}
	return tokens
}
