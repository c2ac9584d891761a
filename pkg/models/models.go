package models

import (
	"time"
)

// Difficulty is how hard a recipe is to cook
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty accepts a difficulty name, empty meaning "any"
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(s)
	if s == "" || d.Valid() {
		return d, true
	}
	return "", false
}

// Recipe is a catalog entry. Recipes are loaded once and never mutated.
type Recipe struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Time        int        `json:"time"` // minutes
	Servings    int        `json:"servings"`
	Difficulty  Difficulty `json:"difficulty"`
	Ingredients []string   `json:"ingredients"`
	Steps       []string   `json:"steps"`
}

// Pantry is the persisted form of a user's ingredient set
type Pantry struct {
	Scope       string    `json:"scope"`
	Products    []string  `json:"products"`
	LastUpdated time.Time `json:"last_updated"`
}

// Favorites is the persisted form of a user's favorite recipe ids
type Favorites struct {
	Scope       string    `json:"scope"`
	RecipeIDs   []int64   `json:"recipe_ids"`
	LastUpdated time.Time `json:"last_updated"`
}
