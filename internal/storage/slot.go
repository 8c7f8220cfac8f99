package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daybook/internal/logger"
)

// Slot is a typed view over one key of a Medium. Values are serialised
// whole on every save; there is no cache.
type Slot[T any] struct {
	medium Medium
	key    string
	empty  func() T
}

// NewSlot binds key in m to type T. empty supplies the value returned for
// an absent or unreadable slot.
func NewSlot[T any](m Medium, key string, empty func() T) *Slot[T] {
	if empty == nil {
		empty = func() T {
			var zero T
			return zero
		}
	}
	return &Slot[T]{medium: m, key: key, empty: empty}
}

func (s *Slot[T]) Key() string {
	return s.key
}

// Load returns the stored value. A missing or malformed slot yields the
// empty value with a nil error; only medium failures are returned.
func (s *Slot[T]) Load() (T, error) {
	raw, ok, err := s.medium.Get(s.key)
	if err != nil {
		return s.empty(), fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	if !ok || raw == "null" {
		return s.empty(), nil
	}

	value := s.empty()
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("Discarding malformed slot", "slot", s.key, "error", err)
		return s.empty(), nil
	}
	return value, nil
}

// Save overwrites the slot with value.
func (s *Slot[T]) Save(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode slot %s: %w", s.key, err)
	}
	if err := s.medium.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}
