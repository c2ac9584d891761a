package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type device struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// DeviceID returns the identifier of this local store, creating it on first use
func (s *Store) DeviceID() (string, error) {
	key := Key(SlotDevice, "id")

	var d device
	err := s.Get(key, &d)
	if err == nil && d.ID != "" {
		return d.ID, nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	d = device{ID: uuid.NewString(), CreatedAt: time.Now()}
	if err := s.Set(key, d); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}
	return d.ID, nil
}
