package pantry

import (
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/fridgechef/pkg/logger"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/storage"
)

// Service keeps each scope's ingredient set in the products slot
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new pantry service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
	}
}

// Get loads the ingredient set for a scope. A scope with nothing stored yet
// has an empty set.
func (s *Service) Get(scope string) (State, error) {
	var p models.Pantry
	err := s.store.Get(storage.Key(storage.SlotProducts, scope), &p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to load products for %s: %w", scope, err)
	}
	return NewState(p.Products), nil
}

// Add adds a single product and reports whether the set changed
func (s *Service) Add(scope, raw string) (State, bool, error) {
	st, err := s.Get(scope)
	if err != nil {
		return st, false, err
	}

	st, changed := st.Add(raw)
	if !changed {
		return st, false, nil
	}
	return st, true, s.save(scope, st)
}

// AddBulk adds every new product found in text and returns those added
func (s *Service) AddBulk(scope, text string) (State, []string, error) {
	st, err := s.Get(scope)
	if err != nil {
		return st, nil, err
	}

	st, added := st.AddBulk(text)
	if len(added) == 0 {
		return st, nil, nil
	}
	return st, added, s.save(scope, st)
}

// Remove deletes the product at pos
func (s *Service) Remove(scope string, pos int) (State, error) {
	st, err := s.Get(scope)
	if err != nil {
		return st, err
	}

	st, err = st.Remove(pos)
	if err != nil {
		return st, err
	}
	return st, s.save(scope, st)
}

// Reset empties the ingredient set for a scope by dropping its document
func (s *Service) Reset(scope string) error {
	if err := s.store.Delete(storage.Key(storage.SlotProducts, scope)); err != nil {
		return fmt.Errorf("failed to reset products for %s: %w", scope, err)
	}
	return nil
}

func (s *Service) save(scope string, st State) error {
	p := models.Pantry{
		Scope:       scope,
		Products:    st.Products,
		LastUpdated: time.Now(),
	}
	if p.Products == nil {
		p.Products = []string{}
	}

	if err := s.store.Set(storage.Key(storage.SlotProducts, scope), p); err != nil {
		return fmt.Errorf("failed to save products for %s: %w", scope, err)
	}
	s.logger.Debug("saved %d products for %s", len(st.Products), scope)
	return nil
}
