package messages

import (
	"fmt"
	"strings"

	"github.com/korjavin/fridgechef/pkg/finder"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/pantry"
)

// cardIngredients is how many ingredients a result card lists before "+N"
const cardIngredients = 4

var difficultyText = map[models.Difficulty]string{
	models.DifficultyEasy:   "easy",
	models.DifficultyMedium: "medium",
	models.DifficultyHard:   "hard",
}

// Welcome is shown when a user starts a conversation
func Welcome() string {
	return "👋 Tell me what food you have and I'll find recipes you can cook.\n\n" +
		"Send ingredients one per message, or use /bulk to paste a list.\n" +
		"Add at least two, then /search."
}

// Difficulty returns the human label for a difficulty
func Difficulty(d models.Difficulty) string {
	if s, ok := difficultyText[d]; ok {
		return s
	}
	return "any"
}

// Products renders the ingredient set as a numbered list
func Products(st pantry.State) string {
	if st.Len() == 0 {
		return "🧊 Your list is empty. Add some ingredients first."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧊 Your ingredients (%d):\n", st.Len())
	for i, p := range st.Products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	if !st.CanSearch() {
		fmt.Fprintf(&b, "\nAdd at least %d ingredients to search.", pantry.MinSearchProducts)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Added confirms which products were added
func Added(added []string) string {
	if len(added) == 0 {
		return "Nothing new to add."
	}
	return fmt.Sprintf("✅ Added: %s", strings.Join(added, ", "))
}

// Suggestions renders autocomplete suggestions. An empty list renders as an
// empty string so callers can skip sending anything.
func Suggestions(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "🍴 %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Results renders a ranked list of recipes
func Results(results []match.Result, products int) string {
	if len(results) == 0 {
		return "😢 No recipes found. Try adding more ingredients or loosening the filters."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ Found %d recipes:\n", len(results))
	for _, r := range results {
		b.WriteString("\n")
		b.WriteString(Card(r, products))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Card renders a single result summary
func Card(r match.Result, products int) string {
	rec := r.Recipe

	shown := rec.Ingredients
	extra := 0
	if len(shown) > cardIngredients {
		extra = len(shown) - cardIngredients
		shown = shown[:cardIngredients]
	}
	ingredients := strings.Join(shown, ", ")
	if extra > 0 {
		ingredients += fmt.Sprintf(", +%d", extra)
	}

	return fmt.Sprintf("#%d %s\n⏱ %d min · 👤 %d · 🔥 %s\n%s\nMatches: %d of %d · %d%%",
		rec.ID, rec.Title,
		rec.Time, rec.Servings, Difficulty(rec.Difficulty),
		ingredients,
		r.MatchCount, products, r.MatchPercent,
	)
}

// Recipe renders the full recipe view
func Recipe(v *finder.RecipeView) string {
	rec := v.Recipe

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", rec.Title)
	fmt.Fprintf(&b, "⏱ %d min | 👤 %d | Difficulty: %s\n", rec.Time, rec.Servings, Difficulty(rec.Difficulty))

	b.WriteString("\nYou have:\n")
	if len(v.Available) == 0 {
		b.WriteString("—\n")
	}
	for _, ing := range v.Available {
		fmt.Fprintf(&b, "✅ %s\n", ing)
	}

	b.WriteString("\nIngredients:\n")
	for _, ing := range rec.Ingredients {
		fmt.Fprintf(&b, "• %s\n", ing)
	}

	b.WriteString("\nSteps:\n")
	for i, step := range rec.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n")
	b.WriteString(FavoriteLabel(v.Favorite))
	return b.String()
}

// FavoriteLabel describes the favorite state of a recipe
func FavoriteLabel(on bool) string {
	if on {
		return "❤️ In favorites"
	}
	return "🤍 Not in favorites"
}

// Filter describes the active refine filter
func Filter(f match.Filter) string {
	maxTime := "any time"
	if f.MaxTime > 0 {
		maxTime = fmt.Sprintf("up to %d min", f.MaxTime)
	}
	return fmt.Sprintf("Filter: %s, %s difficulty", maxTime, Difficulty(f.Difficulty))
}

// Error renders a failed action
func Error(action string) string {
	return fmt.Sprintf("😢 Sorry, I couldn't %s. Please try again later.", action)
}
