package favorites

import (
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Set is an ordered set of favorite recipe ids
type Set struct {
	IDs []int64
}

// Has reports whether id is a favorite
func (s Set) Has(id int64) bool {
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle adds id if absent and removes it otherwise. It reports whether id
// is a favorite afterwards.
func (s Set) Toggle(id int64) (Set, bool) {
	out := make([]int64, 0, len(s.IDs)+1)
	found := false
	for _, v := range s.IDs {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return Set{IDs: out}, !found
}

// Service provides favorite recipe management functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new favorites service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("favorites"),
	}
}

// Get returns the favorites for a scope
func (s *Service) Get(scope string) (Set, error) {
	var f models.Favorites
	err := s.store.Get(storage.Key(storage.SlotFavorites, scope), &f)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("failed to load favorites for %s: %w", scope, err)
	}
	return Set{IDs: f.RecipeIDs}, nil
}

// Toggle flips the favorite status of a recipe and persists the result
func (s *Service) Toggle(scope string, id int64) (bool, error) {
	set, err := s.Get(scope)
	if err != nil {
		return false, err
	}

	set, isFavorite := set.Toggle(id)
	f := models.Favorites{
		Scope:       scope,
		RecipeIDs:   set.IDs,
		LastUpdated: time.Now(),
	}
	if err := s.store.Set(storage.Key(storage.SlotFavorites, scope), f); err != nil {
		return false, fmt.Errorf("failed to save favorites for %s: %w", scope, err)
	}

	s.logger.Debug("recipe %d favorite=%v for %s", id, isFavorite, scope)
	return isFavorite, nil
}
