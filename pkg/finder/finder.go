// Package finder connects the catalog, the user's pantry, favorites and
// session state. Each method corresponds to one user action in a front end.
package finder

import (
	"errors"
	"fmt"

	"github.com/korjavin/fridgechef/pkg/catalog"
	"github.com/korjavin/fridgechef/pkg/favorites"
	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/pantry"
	"github.com/korjavin/fridgechef/pkg/state"
)

var (
	// ErrRecipeNotFound is returned when an id does not exist in the catalog
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrNoRecipeOpen is returned when an action needs an open recipe and
	// none has been opened in the session
	ErrNoRecipeOpen = errors.New("no recipe is open")
)

// RecipeView is everything needed to show a single recipe
type RecipeView struct {
	match.Detail
	MatchCount   int
	MatchPercent int
	Favorite     bool
}

// Service handles user actions for any number of scopes
type Service struct {
	catalog   *catalog.Catalog
	pantry    *pantry.Service
	favorites *favorites.Service
	sessions  *state.Manager
	logger    *logger.Logger
}

// New creates a new finder service
func New(c *catalog.Catalog, p *pantry.Service, f *favorites.Service, sessions *state.Manager) *Service {
	return &Service{
		catalog:   c,
		pantry:    p,
		favorites: f,
		sessions:  sessions,
		logger:    logger.New("finder"),
	}
}

// Sessions returns the session manager
func (s *Service) Sessions() *state.Manager {
	return s.sessions
}

// Products returns the scope's ingredient set
func (s *Service) Products(scope string) (pantry.State, error) {
	return s.pantry.Get(scope)
}

// AddProduct adds one product and reports whether the set changed
func (s *Service) AddProduct(scope, raw string) (pantry.State, bool, error) {
	return s.pantry.Add(scope, raw)
}

// AddBulk adds every new product in text and returns those added
func (s *Service) AddBulk(scope, text string) (pantry.State, []string, error) {
	return s.pantry.AddBulk(scope, text)
}

// RemoveProduct removes the product at pos
func (s *Service) RemoveProduct(scope string, pos int) (pantry.State, error) {
	return s.pantry.Remove(scope, pos)
}

// ClearProducts empties the ingredient set
func (s *Service) ClearProducts(scope string) error {
	return s.pantry.Reset(scope)
}

// Suggest returns autocomplete suggestions for the text being typed
func (s *Service) Suggest(query string) []string {
	return s.catalog.Index.Suggest(query)
}

// Search ranks the catalog against the scope's products, remembers the
// ranked list for later refinement and returns it narrowed by the current
// filter.
func (s *Service) Search(scope string) ([]match.Result, error) {
	st, err := s.pantry.Get(scope)
	if err != nil {
		return nil, err
	}

	results, err := match.Search(s.catalog.Recipes, st.Products)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Update(scope, func(sess *state.Session) {
		sess.Results = results
	})
	s.logger.Debug("search for %s: %d products, %d results", scope, st.Len(), len(results))
	return sess.Refined(), nil
}

// Refine sets the filter and reapplies it to the last ranked list.
// It does not rescore anything.
func (s *Service) Refine(scope string, f match.Filter) []match.Result {
	sess := s.sessions.Update(scope, func(sess *state.Session) {
		sess.Filter = f
	})
	return sess.Refined()
}

// UpdateFilter changes part of the filter through fn and reapplies it
func (s *Service) UpdateFilter(scope string, fn func(*match.Filter)) []match.Result {
	sess := s.sessions.Update(scope, func(sess *state.Session) {
		fn(&sess.Filter)
	})
	return sess.Refined()
}

// Recipe opens a recipe and marks it as the selected one
func (s *Service) Recipe(scope string, id int64) (*RecipeView, error) {
	r, ok := s.catalog.Recipe(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRecipeNotFound, id)
	}

	st, err := s.pantry.Get(scope)
	if err != nil {
		return nil, err
	}
	favs, err := s.favorites.Get(scope)
	if err != nil {
		return nil, err
	}

	s.sessions.Update(scope, func(sess *state.Session) {
		sess.Selected = id
		sess.Opened = true
	})

	view := &RecipeView{
		Detail:   match.Inspect(r, st.Products),
		Favorite: favs.Has(id),
	}
	view.MatchCount = len(view.Available)
	view.MatchPercent = match.Percent(r, st.Products)
	return view, nil
}

// ToggleFavorite flips the favorite flag of the recipe with this id
func (s *Service) ToggleFavorite(scope string, id int64) (int64, bool, error) {
	if _, ok := s.catalog.Recipe(id); !ok {
		return id, false, fmt.Errorf("%w: %d", ErrRecipeNotFound, id)
	}

	on, err := s.favorites.Toggle(scope, id)
	return id, on, err
}

// ToggleSelected flips the favorite flag of the recipe opened last with Recipe
func (s *Service) ToggleSelected(scope string) (int64, bool, error) {
	sess := s.sessions.Get(scope)
	if !sess.Opened {
		return 0, false, ErrNoRecipeOpen
	}
	return s.ToggleFavorite(scope, sess.Selected)
}

// Favorites returns the scope's favorite recipes that exist in the catalog
func (s *Service) Favorites(scope string) ([]match.Result, error) {
	st, err := s.pantry.Get(scope)
	if err != nil {
		return nil, err
	}
	favs, err := s.favorites.Get(scope)
	if err != nil {
		return nil, err
	}

	out := make([]match.Result, 0, len(favs.IDs))
	for _, id := range favs.IDs {
		r, ok := s.catalog.Recipe(id)
		if !ok {
			s.logger.Warn("favorite recipe %d is not in the catalog", id)
			continue
		}
		out = append(out, match.Result{
			Recipe:       r,
			MatchCount:   match.Count(r, st.Products),
			MatchPercent: match.Percent(r, st.Products),
		})
	}
	return out, nil
}
