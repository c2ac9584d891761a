// Package catalog loads the recipe catalog and indexes its ingredient names
// for autocomplete. The catalog is read once per process and never changes
// afterwards; if it cannot be read a small built-in catalog is used instead.
package catalog

import (
	"github.com/korjavin/fridgechef/pkg/models"
)

// Catalog is the loaded recipe collection plus its autocomplete index
type Catalog struct {
	Recipes  []models.Recipe
	Index    *Index
	Fallback bool

	byID map[int64]int
}

// New builds a catalog over recipes, deriving the vocabulary from them
func New(recipes []models.Recipe, suggestLimit int) *Catalog {
	return newCatalog(recipes, BuildVocabulary(recipes), suggestLimit)
}

func newCatalog(recipes []models.Recipe, vocab []string, suggestLimit int) *Catalog {
	c := &Catalog{
		Recipes: recipes,
		Index:   NewIndex(vocab, suggestLimit),
		byID:    make(map[int64]int, len(recipes)),
	}
	for i, r := range recipes {
		c.byID[r.ID] = i
	}
	return c
}

// Recipe finds a recipe by its identifier
func (c *Catalog) Recipe(id int64) (models.Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Recipe{}, false
	}
	return c.Recipes[i], true
}

// Len returns the number of recipes
func (c *Catalog) Len() int {
	return len(c.Recipes)
}

// Close releases resources held by the index
func (c *Catalog) Close() {
	c.Index.Close()
}

// fallbackVocabulary is offered for autocomplete when the real catalog is
// unavailable. It is wider than the fallback recipe on purpose.
var fallbackVocabulary = []string{
	"eggs", "tomato", "oil", "salt", "cheese", "milk", "onion", "garlic",
}

// Fallback returns the built-in one-recipe catalog
func Fallback(suggestLimit int) *Catalog {
	recipes := []models.Recipe{
		{
			ID:          1,
			Title:       "Fried eggs with tomatoes",
			Time:        15,
			Servings:    2,
			Difficulty:  models.DifficultyEasy,
			Ingredients: []string{"eggs", "tomato", "oil", "salt"},
			Steps: []string{
				"Slice the tomato into rounds.",
				"Heat a frying pan and add the oil.",
				"Add the tomatoes and fry them lightly.",
				"Crack the eggs over the tomatoes and season with salt.",
				"Cook covered for 5-7 minutes.",
			},
		},
	}

	c := newCatalog(recipes, fallbackVocabulary, suggestLimit)
	c.Fallback = true
	return c
}
