// Package match scores catalog recipes against a user's ingredient set.
//
// A recipe ingredient counts as available when it and some user product
// contain one another (see ingredient.Matches). Search keeps recipes with at
// least min(2, len(products)) available ingredients and orders them by that
// count, highest first, keeping catalog order among equal counts.
package match

import (
	"errors"
	"math"
	"sort"

	"github.com/korjavin/fridgechef/pkg/ingredient"
	"github.com/korjavin/fridgechef/pkg/models"
)

// MinProducts is the smallest ingredient set Search accepts
const MinProducts = 2

// ErrTooFewProducts is returned by Search when the set is below MinProducts
var ErrTooFewProducts = errors.New("at least two products are required to search")

// Result is a recipe paired with its score against the current products
type Result struct {
	Recipe       models.Recipe
	MatchCount   int
	MatchPercent int
}

// Filter narrows a ranked list. Zero values mean "no constraint".
type Filter struct {
	MaxTime    int
	Difficulty models.Difficulty
}

// IsZero reports whether the filter lets everything through
func (f Filter) IsZero() bool {
	return f.MaxTime <= 0 && f.Difficulty == ""
}

// Detail splits a recipe's ingredients into those the user has and the rest
type Detail struct {
	Recipe    models.Recipe
	Available []string
	Missing   []string
}

// Count returns how many of the recipe's ingredients the products cover
func Count(recipe models.Recipe, products []string) int {
	n := 0
	for _, ing := range recipe.Ingredients {
		if ingredient.MatchesAny(ing, products) {
			n++
		}
	}
	return n
}

// Percent returns Count relative to the size of the ingredient set, rounded.
// It is 0 for an empty set.
func Percent(recipe models.Recipe, products []string) int {
	return percent(Count(recipe, products), len(products))
}

func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Search scores every recipe and returns the ones that pass the threshold,
// best first. It refuses to run with fewer than MinProducts products.
func Search(recipes []models.Recipe, products []string) ([]Result, error) {
	if len(products) < MinProducts {
		return nil, ErrTooFewProducts
	}

	threshold := min(MinProducts, len(products))

	results := make([]Result, 0, len(recipes))
	for _, r := range recipes {
		n := Count(r, products)
		if n < threshold {
			continue
		}
		results = append(results, Result{
			Recipe:       r,
			MatchCount:   n,
			MatchPercent: percent(n, len(products)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchCount > results[j].MatchCount
	})
	return results, nil
}

// Refine drops results that break the filter. It never reorders or rescores,
// so it can be applied repeatedly to the same ranked list.
func Refine(results []Result, f Filter) []Result {
	if f.IsZero() {
		return append(make([]Result, 0, len(results)), results...)
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		if f.MaxTime > 0 && r.Recipe.Time > f.MaxTime {
			continue
		}
		if f.Difficulty != "" && r.Recipe.Difficulty != f.Difficulty {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Inspect partitions a recipe's ingredients, keeping recipe order in both lists
func Inspect(recipe models.Recipe, products []string) Detail {
	d := Detail{Recipe: recipe}
	for _, ing := range recipe.Ingredients {
		if ingredient.MatchesAny(ing, products) {
			d.Available = append(d.Available, ing)
		} else {
			d.Missing = append(d.Missing, ing)
		}
	}
	return d
}
